// Package config loads blanktimer settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds blanktimer configuration.
type Config struct {
	// Store selects where the running timer's end time is kept.
	Store StoreConfig `yaml:"store"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `yaml:"log_file"`
	// MetricsFile, when set, receives Prometheus text-format metrics on exit.
	MetricsFile string `yaml:"metrics_file,omitempty"`
	// Widget configures the passive widget host.
	Widget WidgetConfig `yaml:"widget"`
	// Theme assigns terminal colors to the indicator bands.
	Theme ThemeConfig `yaml:"theme"`
}

// StoreConfig selects the end-time backend.
type StoreConfig struct {
	// Backend is one of sqlite, file, memory.
	Backend string `yaml:"backend"`
	// Path is the database or JSON file path.
	Path string `yaml:"path"`
}

// WidgetConfig configures the widget timeline.
type WidgetConfig struct {
	Window time.Duration `yaml:"window"`
}

// ThemeConfig maps bands to lipgloss colors.
type ThemeConfig struct {
	Green  string `yaml:"green"`
	Orange string `yaml:"orange"`
	Red    string `yaml:"red"`
	Blue   string `yaml:"blue"`
}

// Dir returns ~/.blanktimer, or .blanktimer when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blanktimer"
	}
	return filepath.Join(home, ".blanktimer")
}

// DefaultPath is the config file location under Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    filepath.Join(dir, "blanktimer.db"),
		},
		LogFile: filepath.Join(dir, "blanktimer.log"),
		Widget: WidgetConfig{
			Window: 60 * time.Second,
		},
		Theme: ThemeConfig{
			Green:  "#10B981",
			Orange: "#F59E0B",
			Red:    "#EF4444",
			Blue:   "#3B82F6",
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromHome loads configuration from ~/.blanktimer/config.yaml.
func LoadConfigFromHome() (*Config, error) {
	return LoadConfig(DefaultPath())
}

// SaveConfig saves configuration to a YAML file, creating parent directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	validBackends := map[string]bool{
		"sqlite": true,
		"file":   true,
		"memory": true,
	}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend %q, must be: sqlite, file, or memory", c.Store.Backend)
	}
	if c.Store.Backend != "memory" && c.Store.Path == "" {
		return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
	}
	if c.Widget.Window < time.Second {
		return fmt.Errorf("widget.window must be at least 1s")
	}
	return nil
}
