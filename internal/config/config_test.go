package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() config invalid: %v", err)
	}

	if cfg.View.ZoomFactor != 4 {
		t.Errorf("Expected zoom factor 4, got %v", cfg.View.ZoomFactor)
	}
	if cfg.View.SelectionPadding != 20 {
		t.Errorf("Expected selection padding 20, got %v", cfg.View.SelectionPadding)
	}

	level, err := cfg.LogLevel()
	if err != nil || level != log.InfoLevel {
		t.Errorf("Expected info level, got %v (%v)", level, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"quality too low", func(c *Config) { c.Export.Quality = 0 }},
		{"quality too high", func(c *Config) { c.Export.Quality = 101 }},
		{"zoom factor", func(c *Config) { c.View.ZoomFactor = 1 }},
		{"negative padding", func(c *Config) { c.View.SelectionPadding = -1 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Export.Quality = 75
	cfg.Export.Template = "herbarium.yml"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Loaded config %+v, want %+v", loaded, cfg)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"export": {"quality": 50}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Export.Quality != 50 {
		t.Errorf("Expected quality 50, got %d", cfg.Export.Quality)
	}
	if cfg.View.ZoomFactor != 4 {
		t.Errorf("Expected default zoom factor, got %v", cfg.View.ZoomFactor)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}
