package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/typewriter/internal/typewriter"
)

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "typewriter", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestTiming_Defaults(t *testing.T) {
	cfg := Config{}
	timing := cfg.Timing()

	def := typewriter.DefaultTiming()
	if timing != def {
		t.Errorf("Timing() = %+v, want defaults %+v", timing, def)
	}
}

func TestTiming_CustomValues(t *testing.T) {
	cfg := Config{
		CharsPerSecond: 120,
		MinDurationMs:  500,
		MaxDurationMs:  4000,
		FloorDelayMs:   5,
		Jitter:         0.2,
		PausePollMs:    50,
		ProgressEvery:  20,
	}
	timing := cfg.Timing()

	if timing.CharsPerSecond != 120 {
		t.Errorf("CharsPerSecond = %v, want 120", timing.CharsPerSecond)
	}
	if timing.MinDuration != 500*time.Millisecond {
		t.Errorf("MinDuration = %v, want 500ms", timing.MinDuration)
	}
	if timing.MaxDuration != 4*time.Second {
		t.Errorf("MaxDuration = %v, want 4s", timing.MaxDuration)
	}
	if timing.FloorDelay != 5*time.Millisecond {
		t.Errorf("FloorDelay = %v, want 5ms", timing.FloorDelay)
	}
	if timing.Jitter != 0.2 {
		t.Errorf("Jitter = %v, want 0.2", timing.Jitter)
	}
	if timing.PausePoll != 50*time.Millisecond {
		t.Errorf("PausePoll = %v, want 50ms", timing.PausePoll)
	}
	if timing.ProgressEvery != 20 {
		t.Errorf("ProgressEvery = %d, want 20", timing.ProgressEvery)
	}
}

func TestTiming_InvalidValues(t *testing.T) {
	cfg := Config{
		CharsPerSecond: -10,
		Jitter:         1.5, // > 1, should keep default
	}
	timing := cfg.Timing()

	def := typewriter.DefaultTiming()
	if timing.CharsPerSecond != def.CharsPerSecond {
		t.Errorf("CharsPerSecond with invalid value = %v, want %v",
			timing.CharsPerSecond, def.CharsPerSecond)
	}
	if timing.Jitter != def.Jitter {
		t.Errorf("Jitter with invalid value = %v, want %v", timing.Jitter, def.Jitter)
	}
}

func TestGetHistoryLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 50},
		{"negative becomes default", -5, 50},
		{"custom", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HistoryLimit: tt.limit}
			if got := cfg.GetHistoryLimit(); got != tt.want {
				t.Errorf("GetHistoryLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoad_BasicConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	configContent := `
chars_per_second = 60.0
progress_every = 5
history_limit = 25
`
	if err := os.WriteFile("config.toml", []byte(configContent), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CharsPerSecond != 60 {
		t.Errorf("CharsPerSecond = %v, want 60", cfg.CharsPerSecond)
	}
	if cfg.ProgressEvery != 5 {
		t.Errorf("ProgressEvery = %d, want 5", cfg.ProgressEvery)
	}
	if cfg.HistoryLimit != 25 {
		t.Errorf("HistoryLimit = %d, want 25", cfg.HistoryLimit)
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte("invalid = [[["), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	_, err = Load()
	if err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}
