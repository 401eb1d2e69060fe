// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Persistence selects the durable backend: "file" or "sqlite".
	Persistence string `koanf:"persistence"`

	// DataPath is the JSON document path for the file backend.
	DataPath string `koanf:"data_path"`

	// SQLiteDSN is the database path (or ":memory:") for the sqlite backend.
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// LeaderboardSize is the default length of a category leaderboard.
	LeaderboardSize int `koanf:"leaderboard_size"`

	// OverviewSize is the per-category length of the all-categories view.
	OverviewSize int `koanf:"overview_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// AdminToken guards delete routes. Empty disables the admin surface.
	AdminToken string `koanf:"admin_token"`

	// DirectoryURL points at the user directory used for display names.
	// Empty disables identity resolution.
	DirectoryURL string `koanf:"directory_url"`

	// IdentityTimeoutMS bounds each display name lookup.
	IdentityTimeoutMS int `koanf:"identity_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		Persistence:         "file",
		DataPath:            "benchboard.json",
		SQLiteDSN:           "benchboard.db",
		LeaderboardSize:     10,
		OverviewSize:        3,
		MaxLeaderboardLimit: 100,
		AdminToken:          "",
		DirectoryURL:        "",
		IdentityTimeoutMS:   2000,
	}
}
