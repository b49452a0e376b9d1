// Package config defines calculator configuration and its loading hooks.
//
// Every setting has a default that reproduces the plain interactive
// behaviour; nothing needs to be configured to run the calculator.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// NoneMarker is printed for a reading that does not apply.
	NoneMarker string `koanf:"none_marker"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:    "warn",
		LogFormat:   "text",
		NoneMarker:  "None",
		MetricsFile: "",
	}
}
