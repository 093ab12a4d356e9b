package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Config holds the application configuration
type Config struct {
	Export ExportConfig `json:"export"`
	View   ViewConfig   `json:"view"`
	Log    LogConfig    `json:"log"`
}

// ExportConfig holds configuration for crop encoding and templates
type ExportConfig struct {
	Quality  int    `json:"quality"`
	Lossless bool   `json:"lossless"`
	Template string `json:"template"`
}

// ViewConfig holds configuration for the boxes view
type ViewConfig struct {
	ZoomFactor       float64 `json:"zoom_factor"`
	SelectionPadding float64 `json:"selection_padding"`
}

// LogConfig holds configuration for logging
type LogConfig struct {
	Level string `json:"level"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			Quality:  90,
			Lossless: false,
		},
		View: ViewConfig{
			ZoomFactor:       4,
			SelectionPadding: 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return fmt.Errorf("export.quality must be between 1 and 100")
	}

	if c.View.ZoomFactor <= 1 {
		return fmt.Errorf("view.zoom_factor must be greater than 1")
	}

	if c.View.SelectionPadding < 0 {
		return fmt.Errorf("view.selection_padding cannot be negative")
	}

	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "boxcrop", "config.json")
}
