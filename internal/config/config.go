package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend selects where ledger blobs are persisted.
type Backend string

const (
	BackendFile     Backend = "file"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FinVoice"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Store struct {
		Backend Backend `envconfig:"STORE_BACKEND" default:"file"`
		DataDir string  `envconfig:"DATA_DIR" default:".finvoice"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finvoice"`
	}

	AutoSave struct {
		Interval time.Duration `envconfig:"AUTOSAVE_INTERVAL" default:"30s"`
	}

	Profile struct {
		DefaultName string `envconfig:"DEFAULT_PROFILE_NAME" default:"Your Name"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Store.Backend {
	case BackendFile, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.AutoSave.Interval <= 0 {
		return nil, fmt.Errorf("autosave interval must be positive, got %s", cfg.AutoSave.Interval)
	}

	return &cfg, nil
}
