// Package config loads the arcana settings from the environment
package config

import (
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-arcana/internal/errors"
)

// Store names the wizard storage backend
type Store string

// Supported stores
const (
	StoreMemory Store = "memory"
	StoreRedis  Store = "redis"
	StoreSQLite Store = "sqlite"
)

// Stores returns the supported stores
func Stores() []string {
	return []string{string(StoreMemory), string(StoreRedis), string(StoreSQLite)}
}

// Config holds all settings of the arcana CLI
type Config struct {
	Store      Store      `env:"ARCANA_STORE" envDefault:"memory"`
	RedisAddr  string     `env:"ARCANA_REDIS_ADDR" envDefault:"localhost:6379"`
	SQLitePath string     `env:"ARCANA_SQLITE_PATH" envDefault:"arcana.db"`
	Seed       int64      `env:"ARCANA_SEED" envDefault:"0"` // zero rolls dice
	LogLevel   slog.Level `env:"ARCANA_LOG_LEVEL" envDefault:"info"`
}

// Load reads the given .env files, or ./.env if none are given and it
// exists, and then parses the environment. Variables already set win over
// the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to load env file")
		}
		slog.Debug("No .env file found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected store has what it needs
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("store", string(c.Store), Stores(), vb)

	switch c.Store {
	case StoreRedis:
		errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	case StoreSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	}

	return vb.Build()
}
