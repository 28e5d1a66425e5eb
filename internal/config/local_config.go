// Package config loads tagengine's runtime configuration: defaults
// registered in code, overridden by .tagengine/config.yaml, then by
// TAGENGINE_* environment variables, then by flags.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig is the subset of config.yaml read directly from disk
// rather than through the viper singleton — needed before viper
// initializes, or when the working directory has moved since it did.
type LocalConfig struct {
	DBPath        string `yaml:"db-path"`
	PolicyDir     string `yaml:"policy-dir"`
	NoWatch       bool   `yaml:"no-watch"`
	DefaultHostNS string `yaml:"default-host-namespace"`
}

// LoadLocalConfig reads and parses config.yaml directly from dir.
// Returns an empty LocalConfig (not nil) if the file is missing or
// malformed — callers fall back to registered defaults in that case.
func LoadLocalConfig(dir string) *LocalConfig {
	configPath := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(configPath) // #nosec G304 - configPath built from caller-supplied dir
	if err != nil {
		return &LocalConfig{}
	}

	var cfg LocalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &LocalConfig{}
	}
	return &cfg
}

// LoadLocalConfigWithEnv reads config.yaml and applies environment
// variable overrides, which take precedence over file values.
//
// Supported environment variables:
//   - TAGENGINE_DB_PATH overrides db-path
func LoadLocalConfigWithEnv(dir string) *LocalConfig {
	cfg := LoadLocalConfig(dir)
	if envPath := os.Getenv("TAGENGINE_DB_PATH"); envPath != "" {
		cfg.DBPath = envPath
	}
	return cfg
}

// GetDBPath resolves the effective SQLite database path for dir's
// .tagengine directory, environment override included.
func GetDBPath(dir string) string {
	return LoadLocalConfigWithEnv(dir).DBPath
}
