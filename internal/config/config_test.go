package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "IDR", cfg.Workspace.Currency)
	assert.Equal(t, 6, cfg.Analytics.TrendWindow)
	assert.Equal(t, [2]string{"ayu", "bima"}, cfg.Owners())
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres://postgres:@localhost:5432/dompet?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("OWNER_A", "sari")
	t.Setenv("OWNER_B", "dimas")
	t.Setenv("DB_NAME", "household")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://dompet.example,http://localhost:3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, [2]string{"sari", "dimas"}, cfg.Owners())
	assert.Equal(t, []string{"https://dompet.example", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.ConnectionString(), "/household?")
}

func TestLoad_RejectsSameOwners(t *testing.T) {
	t.Setenv("OWNER_A", "ayu")
	t.Setenv("OWNER_B", "ayu")

	_, err := config.Load()
	assert.ErrorContains(t, err, "must differ")
}
