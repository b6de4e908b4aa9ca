// Package config loads mentordeck user configuration from a YAML file,
// with sane defaults when the file is absent and environment overrides
// for settings that vary per machine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all mentordeck configuration.
type Config struct {
	// Theme selects the color scheme: auto, light, or dark.
	Theme string `yaml:"theme"`

	Table   TableConfig   `yaml:"table"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// TableConfig configures table presentation.
type TableConfig struct {
	// Breakpoint is the render width, in terminal cells, below which
	// tables switch from the grid to the per-row card presentation.
	Breakpoint int `yaml:"breakpoint"`

	// Zebra enables alternating-row striping in the grid.
	Zebra bool `yaml:"zebra"`
}

// ExportConfig configures CSV export.
type ExportConfig struct {
	// Dir is where table-<id>.csv files land.
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Theme: "auto",
		Table: TableConfig{
			Breakpoint: 72,
			Zebra:      true,
		},
		Export:  ExportConfig{Dir: "."},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "mentordeck", "config.yaml")
}

// Load reads the config at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error; a
// malformed one is, so the caller can report it and fall back to
// Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Default(), fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return Default(), fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.normalize()
	return cfg, nil
}

// applyEnvOverrides layers MENTORDECK_* environment variables over the
// file values.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("MENTORDECK_THEME"); theme != "" {
		c.Theme = theme
	}
	if dir := os.Getenv("MENTORDECK_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if level := os.Getenv("MENTORDECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if bp := os.Getenv("MENTORDECK_TABLE_BREAKPOINT"); bp != "" {
		if parsed, err := strconv.Atoi(bp); err == nil && parsed > 0 {
			c.Table.Breakpoint = parsed
		}
	}
}

// normalize clamps out-of-range values back to defaults.
func (c *Config) normalize() {
	if c.Table.Breakpoint <= 0 {
		c.Table.Breakpoint = Default().Table.Breakpoint
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		c.Theme = "auto"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
