package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultInput     = "play_firewall_config.txt"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultOutput    = "text"
)

// Environment variable names.
const (
	EnvInput    = "CONFPARSE_INPUT"
	EnvLogLevel = "CONFPARSE_LOG_LEVEL"
	EnvLogFile  = "CONFPARSE_LOG_FILE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: DefaultInput,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: DefaultOutput,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if input := strings.TrimSpace(os.Getenv(EnvInput)); input != "" {
		c.Input = input
		c.Inputs = nil
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.Log.Level = level
	}
	if file := strings.TrimSpace(os.Getenv(EnvLogFile)); file != "" {
		c.Log.File = file
	}
}
