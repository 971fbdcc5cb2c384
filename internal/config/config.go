// Package config reads server settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Addr     string `env:"ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogDev   bool   `env:"LOG_DEV" envDefault:"false"`

	// CatalogPath replaces the built-in formats when set.
	CatalogPath string `env:"CATALOG_PATH"`
	// DatabaseURL enables the event journal when set.
	DatabaseURL string `env:"DATABASE_URL"`
	PublicURL   string `env:"PUBLIC_URL"`

	TickInterval    time.Duration `env:"TICK_INTERVAL" envDefault:"1s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	JournalBuffer   int           `env:"JOURNAL_BUFFER" envDefault:"256"`
	// IdleTimeout closes sessions nobody is watching; 0 keeps them forever.
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
}

// Load reads the given .env files, skipping missing ones, then parses the
// environment. Variables already set win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: ADDR is empty", ErrInvalid)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: TICK_INTERVAL must be positive", ErrInvalid)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive", ErrInvalid)
	}
	if c.JournalBuffer <= 0 {
		return fmt.Errorf("%w: JOURNAL_BUFFER must be positive", ErrInvalid)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("%w: IDLE_TIMEOUT must not be negative", ErrInvalid)
	}
	return nil
}
