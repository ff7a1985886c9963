package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 40 || cfg.Lookahead != 6 || cfg.CanvasSize != 500 || cfg.Port != DefaultPort {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !cfg.ShouldAdvertise() {
		t.Fatal("advertising should default to on")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
threshold: 25
canvas_size: 800
library_path: /tmp/lib.json
advertise: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Threshold != 25 || cfg.CanvasSize != 800 || cfg.LibraryPath != "/tmp/lib.json" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Lookahead != 6 || cfg.Port != DefaultPort {
		t.Fatalf("unset fields lost their defaults: %+v", cfg)
	}
	if cfg.ShouldAdvertise() {
		t.Fatal("advertise: false ignored")
	}

	tc := cfg.Tracker()
	if tc.Threshold != 25 || tc.Size != 800 || tc.Lookahead != 6 {
		t.Fatalf("tracker=%+v", tc)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative threshold", "threshold: -3\n"},
		{"negative lookahead", "lookahead: -1\n"},
		{"zero threshold", "threshold: 0\n"},
		{"zero port", "port: 0\n"},
		{"bad port", "port: 70000\n"},
		{"not yaml", "threshold: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadZeroLookahead(t *testing.T) {
	cfg, err := Load(writeConfig(t, "lookahead: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lookahead != 0 || cfg.Tracker().Lookahead != 0 {
		t.Fatalf("lookahead: 0 replaced by %d", cfg.Lookahead)
	}
	if cfg.Threshold != 40 {
		t.Fatalf("threshold=%v", cfg.Threshold)
	}
}
