package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/confparse/pkg/classifier"
	"github.com/ccollicutt/confparse/pkg/logging"
)

// Load reads and validates a configuration file. Files ending in .toml are
// decoded as TOML, anything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadDefault builds a configuration without a config file: defaults plus
// environment overrides.
func LoadDefault(_ context.Context) (*Config, error) {
	return finish(DefaultConfig())
}

func finish(cfg *Config) (*Config, error) {
	// Best-effort: a .env in the working directory may carry overrides
	_ = godotenv.Load()

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors and resolves level and label
// names.
func Validate(cfg *Config) error {
	if len(cfg.InputNames()) == 0 {
		return errors.New("input: at least one input is required")
	}
	for i, in := range cfg.Inputs {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("inputs[%d]: empty input name", i)
		}
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := validateHandlers(&cfg.Handlers); err != nil {
		return fmt.Errorf("handlers: %w", err)
	}

	switch cfg.Output {
	case "text", "json", "markdown":
	case "":
		cfg.Output = DefaultOutput
	default:
		return fmt.Errorf("output: unknown format %q (must be text, json or markdown)", cfg.Output)
	}

	return nil
}

func validateLog(lc *LogConfig) error {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return err
	}
	lc.parsedLevel = level

	switch logging.Format(lc.Format) {
	case logging.FormatText, logging.FormatJSON:
	case "":
		lc.Format = DefaultLogFormat
	default:
		return fmt.Errorf("unknown format %q (must be text or json)", lc.Format)
	}

	return nil
}

func validateHandlers(hc *HandlersConfig) error {
	if hc.Strict && len(hc.Disabled) > 0 {
		return errors.New("strict cannot be combined with disabled labels")
	}

	hc.disabledLabels = hc.disabledLabels[:0]
	for i, name := range hc.Disabled {
		label, err := classifier.ParseLabel(name)
		if err != nil {
			return fmt.Errorf("disabled[%d]: %w", i, err)
		}
		hc.disabledLabels = append(hc.disabledLabels, label)
	}

	return nil
}
