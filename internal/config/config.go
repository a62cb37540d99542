package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/typewriter/internal/typewriter"
)

type Config struct {
	// Reveal cadence
	CharsPerSecond float64 `koanf:"chars_per_second"`
	MinDurationMs  int     `koanf:"min_duration_ms"`
	MaxDurationMs  int     `koanf:"max_duration_ms"`
	FloorDelayMs   int     `koanf:"floor_delay_ms"`
	Jitter         float64 `koanf:"jitter"` // fraction of the per-unit delay, 0-1

	// Worker behavior
	PausePollMs   int `koanf:"pause_poll_ms"`
	ProgressEvery int `koanf:"progress_every"`

	// Session history
	HistoryLimit int `koanf:"history_limit"` // recent sessions kept in the store
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/typewriter/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "typewriter", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// Timing returns the reveal cadence with defaults applied for every unset or
// invalid knob.
func (c *Config) Timing() typewriter.Timing {
	t := typewriter.DefaultTiming()

	if c.CharsPerSecond > 0 {
		t.CharsPerSecond = c.CharsPerSecond
	}
	if c.MinDurationMs > 0 {
		t.MinDuration = time.Duration(c.MinDurationMs) * time.Millisecond
	}
	if c.MaxDurationMs > 0 {
		t.MaxDuration = time.Duration(c.MaxDurationMs) * time.Millisecond
	}
	if c.FloorDelayMs > 0 {
		t.FloorDelay = time.Duration(c.FloorDelayMs) * time.Millisecond
	}
	if c.Jitter > 0 && c.Jitter <= 1 {
		t.Jitter = c.Jitter
	}
	if c.PausePollMs > 0 {
		t.PausePoll = time.Duration(c.PausePollMs) * time.Millisecond
	}
	if c.ProgressEvery > 0 {
		t.ProgressEvery = c.ProgressEvery
	}
	return t
}

// GetHistoryLimit returns the session history size with the default applied.
func (c *Config) GetHistoryLimit() int {
	if c.HistoryLimit <= 0 {
		return 50
	}
	return c.HistoryLimit
}
