package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if BENCHBOARD_CONFIG is set
//  3. env (prefix BENCHBOARD_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BENCHBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BENCHBOARD_ADDR, BENCHBOARD_DATA_PATH, ...
	// Map env keys like BENCHBOARD_DATA_PATH -> data_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BENCHBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "benchboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Persistence {
	case "file", "sqlite":
	default:
		return fmt.Errorf("%w: unknown persistence backend %q", ErrInvalidConfig, c.Persistence)
	}
	if c.Persistence == "file" && c.DataPath == "" {
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if c.Persistence == "sqlite" && c.SQLiteDSN == "" {
		return fmt.Errorf("%w: sqlite_dsn must not be empty", ErrInvalidConfig)
	}
	if c.LeaderboardSize < 1 || c.OverviewSize < 1 {
		return fmt.Errorf("%w: leaderboard sizes must be positive", ErrInvalidConfig)
	}
	if c.MaxLeaderboardLimit < c.LeaderboardSize {
		return fmt.Errorf("%w: max_leaderboard_limit must be >= leaderboard_size", ErrInvalidConfig)
	}
	if c.IdentityTimeoutMS < 1 {
		return fmt.Errorf("%w: identity_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
