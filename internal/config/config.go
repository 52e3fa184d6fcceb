// Package config loads fleetcheck settings from defaults, an optional local
// JSON file, and FLEETCHECK_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LocalConfigFile is the config file looked up in the working directory.
const LocalConfigFile = ".fleetcheck.json"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FLEETCHECK_"

// Configuration represents the fleetcheck settings.
type Configuration struct {
	LogLevel            string `koanf:"log_level" validate:"oneof=trace debug info warn error disabled"`
	LogFormat           string `koanf:"log_format" validate:"oneof=console json"`
	Debug               bool   `koanf:"debug"`
	NoColor             bool   `koanf:"no_color"`
	ShowSummary         bool   `koanf:"show_summary"`
	Verbose             bool   `koanf:"verbose"`
	FailOnInvalid       bool   `koanf:"fail_on_invalid"`
	StrictUnknownFields bool   `koanf:"strict_unknown_fields"`
	Progress            bool   `koanf:"progress"`
}

// EffectiveLogLevel returns the log level after applying the debug switch.
func (c *Configuration) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// Load loads configuration from defaults, the given file, and the environment.
// Priority: Environment variables > config file > Defaults.
// A missing file is not an error.
func Load(configPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: FLEETCHECK_SHOW_SUMMARY -> show_summary
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
