package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// Offset is the UTC offset periods are resolved at
	Offset string `toml:"offset"`
	// DefaultPeriod is resolved when no token is given
	DefaultPeriod string `toml:"default_period"`
	// Token is the Lunch Money API token
	Token string `toml:"token"`
	// Currency is the currency report totals are computed in
	Currency string `toml:"currency"`
	// DebitsAsNegative shows debits as negative numbers
	DebitsAsNegative bool `toml:"debits_as_negative"`
}

// defaultConfig is written by config init.
func defaultConfig() Config {
	return Config{
		Offset:        "+00:00",
		DefaultPeriod: "current-month",
		Currency:      defaultCurrency,
	}
}

// configFromViper reads the effective configuration: flags, then environment,
// then the config file.
func configFromViper(v *viper.Viper) Config {
	return Config{
		Debug:            v.GetBool("debug"),
		Offset:           v.GetString("offset"),
		DefaultPeriod:    v.GetString("default_period"),
		Token:            v.GetString("token"),
		Currency:         v.GetString("currency"),
		DebitsAsNegative: v.GetBool("debits_as_negative"),
	}
}

// defaultConfigFilePath is where config init writes when --config is not given.
func defaultConfigFilePath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find user config directory: %w", err)
	}
	return filepath.Join(configDir, "dateperiod", "dateperiod.toml"), nil
}

// loadConfigFromFile loads configuration from a TOML file.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config file %s: %w", path, err)
	}

	return &config, nil
}

// saveConfigToFile writes configuration to a TOML file, creating parent directories.
func saveConfigToFile(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

func maskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}
