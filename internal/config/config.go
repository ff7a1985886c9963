// Package config loads TraceBoard settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"TraceBoard/internal/state"
)

const (
	DefaultFilename = "traceboard.yml"
	DefaultPort     = 8888
)

// Config holds the tunables of one board. Keys missing from the file keep
// their defaults; keys present, zero included, override them.
type Config struct {
	// Threshold is the on-track distance in canvas pixels.
	Threshold float64 `yaml:"threshold"`
	Lookahead int     `yaml:"lookahead"`
	// CanvasSize is the side of the square practice canvas. Stored pictures
	// are normalized and scaled to it.
	CanvasSize  float64 `yaml:"canvas_size"`
	LibraryPath string  `yaml:"library_path"`
	Port        int     `yaml:"port"`
	// Advertise publishes the board on the local network via mDNS.
	Advertise *bool `yaml:"advertise"` // pointer to distinguish unset vs false
}

func Default() Config {
	tc := state.DefaultTrackerConfig()
	advertise := true
	return Config{
		Threshold:   tc.Threshold,
		Lookahead:   tc.Lookahead,
		CanvasSize:  tc.Size,
		LibraryPath: defaultLibraryPath(),
		Port:        DefaultPort,
		Advertise:   &advertise,
	}
}

func defaultLibraryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pictures.json"
	}
	return filepath.Join(dir, "traceboard", "pictures.json")
}

// Load reads path on top of the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// yaml.v3 leaves fields without a key untouched.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[CONFIG] Loaded %s", path)
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Threshold <= 0:
		return fmt.Errorf("threshold must be positive, got %v", c.Threshold)
	case c.Lookahead < 0:
		return fmt.Errorf("lookahead must not be negative, got %d", c.Lookahead)
	case c.CanvasSize <= 0:
		return fmt.Errorf("canvas_size must be positive, got %v", c.CanvasSize)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}

// ShouldAdvertise reports whether mDNS advertising is enabled.
func (c Config) ShouldAdvertise() bool {
	return c.Advertise == nil || *c.Advertise
}

// Tracker returns the tracker settings for this config.
func (c Config) Tracker() state.TrackerConfig {
	return state.TrackerConfig{Threshold: c.Threshold, Lookahead: c.Lookahead, Size: c.CanvasSize}
}
