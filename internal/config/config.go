package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Dompet"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"dompet"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	// Workspace names the two people sharing the ledger.
	Workspace struct {
		OwnerA   string `envconfig:"OWNER_A" default:"ayu"`
		OwnerB   string `envconfig:"OWNER_B" default:"bima"`
		Currency string `envconfig:"CURRENCY" default:"IDR"`
	}

	Analytics struct {
		TrendWindow int `envconfig:"TREND_WINDOW" default:"6"`
	}

	Auth struct {
		// JWTSecret enables bearer-token identity when set.
		JWTSecret string        `envconfig:"JWT_SECRET"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"720h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

// Owners returns the two workspace identities in order.
func (c *Config) Owners() [2]string {
	return [2]string{c.Workspace.OwnerA, c.Workspace.OwnerB}
}

func (c *Config) validate() error {
	a := strings.TrimSpace(c.Workspace.OwnerA)
	b := strings.TrimSpace(c.Workspace.OwnerB)

	if a == "" || b == "" {
		return errors.New("OWNER_A and OWNER_B must both be set")
	}

	if a == b {
		return errors.New("OWNER_A and OWNER_B must differ")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
