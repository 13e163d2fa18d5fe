package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Layout.ChargeStrength != -400 {
		t.Errorf("expected charge -400, got %v", cfg.Layout.ChargeStrength)
	}
	if cfg.History.Depth != 10 {
		t.Errorf("expected history depth 10, got %d", cfg.History.Depth)
	}
	if cfg.Interaction.ClickThreshold().Milliseconds() != 100 {
		t.Errorf("expected 100ms click threshold, got %v", cfg.Interaction.ClickThreshold())
	}
}

func TestLoad_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config written: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("expected backend sqlite, got %q", cfg.Storage.Backend)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.Places.Latitude != nil {
		t.Error("expected no coordinates by default")
	}
	if len(again.Palette.Colors) != len(cfg.Palette.Colors) {
		t.Errorf("expected %d colors, got %d", len(cfg.Palette.Colors), len(again.Palette.Colors))
	}
}

func TestLoad_MergesOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[storage]
backend = "memory"

[layout]
width = 800
height = 600

[places]
latitude = 46.2
longitude = 6.14
`
	os.WriteFile(path, []byte(content), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("expected backend memory, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "graphData" {
		t.Errorf("expected default key kept, got %q", cfg.Storage.Key)
	}
	if cfg.Layout.Width != 800 || cfg.Layout.LinkDistance != 100 {
		t.Errorf("unexpected layout %+v", cfg.Layout)
	}
	if cfg.Places.Latitude == nil || *cfg.Places.Latitude != 46.2 {
		t.Errorf("expected latitude 46.2, got %v", cfg.Places.Latitude)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"backend", "[storage]\nbackend = \"cloud\"\n"},
		{"canvas", "[layout]\nwidth = 40\n"},
		{"history", "[history]\ndepth = 1\n"},
		{"half coordinate", "[places]\nlatitude = 1.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte(tt.content), 0644)
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[storage\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
