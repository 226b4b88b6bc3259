// Package config defines service configuration and its loader.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Season source kinds.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// Source selects where events are read from: json or sqlite.
	Source string `koanf:"source"`

	// EventsPath is the JSON events file used when Source is json.
	EventsPath string `koanf:"events_path"`

	// SQLitePath is the database file used when Source is sqlite, or when
	// PersistLedger is set.
	SQLitePath string `koanf:"sqlite_path"`

	// PersistLedger writes every computed ledger into SQLite.
	PersistLedger bool `koanf:"persist_ledger"`

	// ReloadInterval schedules a background season reload. Zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval"`

	// CORSAllowedOrigins lists origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		ShutdownTimeout:     10 * time.Second,
		MaxLeaderboardLimit: 100,
		Source:              SourceJSON,
		EventsPath:          "events.json",
		SQLitePath:          "boxscore.db",
		CORSAllowedOrigins:  []string{"*"},
	}
}

// Validate reports the first invalid field wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	case c.ReloadInterval < 0:
		return fmt.Errorf("%w: reload_interval must not be negative", ErrInvalidConfig)
	}

	switch c.Source {
	case SourceJSON:
		if c.EventsPath == "" {
			return fmt.Errorf("%w: events_path is required for the json source", ErrInvalidConfig)
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}

	if c.PersistLedger && c.SQLitePath == "" {
		return fmt.Errorf("%w: persist_ledger needs sqlite_path", ErrInvalidConfig)
	}
	return nil
}
