// Package config loads the process configuration from an optional YAML
// file and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "CONFIG_FILE"

// Config carries everything the API binary needs; the cache root and base
// URL are threaded explicitly into the meteostat client.
type Config struct {
	Port            string        `yaml:"port"`
	Origin          string        `yaml:"origin"`
	CacheDir        string        `yaml:"cacheDir"`
	BaseURL         string        `yaml:"baseURL"`
	RefreshTTL      time.Duration `yaml:"refreshTTL"`
	StationsRefresh time.Duration `yaml:"stationsRefresh"`
	LogLevel        string        `yaml:"logLevel"`
}

// Load reads the YAML file named by CONFIG_FILE, if any, then applies
// environment overrides and defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            "8080",
		RefreshTTL:      24 * time.Hour,
		StationsRefresh: 24 * time.Hour,
		LogLevel:        "info",
	}

	if path := os.Getenv(configPathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.Origin, "ORIGIN")
	overrideString(&cfg.CacheDir, "CACHE_DIR")
	overrideString(&cfg.BaseURL, "BASE_URL")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	if err := overrideDuration(&cfg.RefreshTTL, "REFRESH_TTL"); err != nil {
		return nil, err
	}
	if err := overrideDuration(&cfg.StationsRefresh, "STATIONS_REFRESH"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func overrideString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		*target = val
	}
}

func overrideDuration(target *time.Duration, key string) error {
	val, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*target = parsed
	return nil
}
