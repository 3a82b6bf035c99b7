package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertQueryStampsEachRow(t *testing.T) {
	assert.Equal(t, 2, strings.Count(insertQuery, "clock_timestamp()"))
	assert.NotContains(t, insertQuery, "NOW()")
}

func TestListOrderFollowsInsertion(t *testing.T) {
	assert.Equal(t, " ORDER BY created_at ASC, seq ASC", listOrder)
}
