package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Matchmaking holds the timings of the background matchmaking loop.
type Matchmaking struct {
	Interval       time.Duration `yaml:"interval"`        // pool scan period (default: 10s)
	TeardownDelay  time.Duration `yaml:"teardown_delay"`  // finished arenas stay queryable (default: 15m)
	ReaperInterval time.Duration `yaml:"reaper_interval"` // teardown check period (default: 1s)
}

// ArenaServer holds all configuration for the arena server.
type ArenaServer struct {
	LogLevel string `yaml:"log_level"`

	// Database
	Database DatabaseConfig `yaml:"database"`
	Persist  bool           `yaml:"persist"` // false keeps everything in memory

	// Catalog
	CatalogPath string `yaml:"catalog_path"` // empty loads the embedded sample
	ScriptsDir  string `yaml:"scripts_dir"`  // Lua effects, empty for none

	Matchmaking Matchmaking `yaml:"matchmaking"`

	// RNGSeed seeds every arena's random source; 0 seeds from the clock.
	RNGSeed uint64 `yaml:"rng_seed"`
}

// DefaultArenaServer returns ArenaServer config with sensible defaults.
func DefaultArenaServer() ArenaServer {
	return ArenaServer{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "linkarena",
			Password: "linkarena",
			DBName:   "linkarena",
			SSLMode:  "disable",
		},
		Matchmaking: Matchmaking{
			Interval:       10 * time.Second,
			TeardownDelay:  15 * time.Minute,
			ReaperInterval: time.Second,
		},
	}
}

// LoadArenaServer loads arena server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArenaServer(path string) (ArenaServer, error) {
	cfg := DefaultArenaServer()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c ArenaServer) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}
