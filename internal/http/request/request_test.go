package request_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/analytics"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
)

type sample struct {
	Owner  string  `json:"owner" validate:"omitempty,owner"`
	Type   string  `json:"type" validate:"required,oneof=income expense"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
}

func TestDecodeJSON(t *testing.T) {
	val := request.NewValidator("ayu", "bima")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"owner":"ayu","type":"expense","amount":5,"date":"2026-03-05"}`},
		{name: "owner optional", body: `{"type":"income","amount":5,"date":"2026-03-05"}`},
		{name: "stranger owner", body: `{"owner":"eve","type":"income","amount":5,"date":"2026-03-05"}`, wantErr: "owner is not a workspace owner"},
		{name: "bad type", body: `{"type":"gift","amount":5,"date":"2026-03-05"}`, wantErr: "type must be one of [income expense]"},
		{name: "zero amount", body: `{"type":"income","amount":0,"date":"2026-03-05"}`, wantErr: "amount must be greater than 0"},
		{name: "bad date", body: `{"type":"income","amount":1,"date":"05/03/2026"}`, wantErr: "date must be a date formatted 2006-01-02"},
		{name: "missing fields", body: `{}`, wantErr: "type is required"},
		{name: "malformed", body: `{`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sample

			err := request.DecodeJSON(req, val, &dst)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewValidator_OwnerTag(t *testing.T) {
	var val *request.Validator

	require.NotPanics(t, func() { val = request.NewValidator("ayu", "bima") })

	assert.NoError(t, val.Var("ayu", "owner"))
	assert.NoError(t, val.Var("bima", "owner"))
	assert.Error(t, val.Var("mallory", "owner"))
}

func TestMonth(t *testing.T) {
	now := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		query   string
		want    analytics.Month
		wantErr bool
	}{
		{query: "", want: analytics.Month{Year: 2026, Month: time.October}},
		{query: "?year=2025&month=2", want: analytics.Month{Year: 2025, Month: time.February}},
		{query: "?month=3", want: analytics.Month{Year: 2026, Month: time.March}},
		{query: "?month=13", wantErr: true},
		{query: "?month=0", wantErr: true},
		{query: "?year=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := request.Month(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil), now)
			if tt.wantErr {
				require.ErrorIs(t, err, request.ErrInvalidMonth)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
