// Package config provides configuration loading and validation for confparse.
package config

import (
	"log/slog"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Input is the default input resource, used when Inputs is empty.
	Input string `yaml:"input" toml:"input"`

	// Inputs lists input files or glob patterns. "-" selects stdin.
	Inputs []string `yaml:"inputs,omitempty" toml:"inputs,omitempty"`

	Log      LogConfig      `yaml:"log" toml:"log"`
	Handlers HandlersConfig `yaml:"handlers" toml:"handlers"`

	// Output is the report format (text, json or markdown).
	Output string `yaml:"output" toml:"output"`
}

// LogConfig controls the diagnostic trace.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `yaml:"level" toml:"level"`

	// Format is text or json.
	Format string `yaml:"format" toml:"format"`

	// File receives the log instead of stderr when set. It is truncated on
	// every run.
	File string `yaml:"file,omitempty" toml:"file,omitempty"`

	// parsedLevel is populated during validation.
	parsedLevel slog.Level
}

// ParsedLevel returns the level resolved during validation.
func (l *LogConfig) ParsedLevel() slog.Level {
	return l.parsedLevel
}

// HandlersConfig shapes the handler table.
type HandlersConfig struct {
	// Strict refuses to start unless every label has a handler.
	Strict bool `yaml:"strict" toml:"strict"`

	// Disabled lists labels to leave out of the table. Lines with those
	// labels are reported as unhandled.
	Disabled []string `yaml:"disabled,omitempty" toml:"disabled,omitempty"`

	// disabledLabels is populated during validation.
	disabledLabels []classifier.Label
}

// DisabledLabels returns the labels resolved from Disabled during validation.
func (h *HandlersConfig) DisabledLabels() []classifier.Label {
	return h.disabledLabels
}

// InputNames returns the configured inputs, falling back to Input.
func (c *Config) InputNames() []string {
	if len(c.Inputs) > 0 {
		return c.Inputs
	}
	if c.Input != "" {
		return []string{c.Input}
	}
	return nil
}
