/*
Package config loads server configuration from a YAML file.

PURPOSE:
  Keeps deployment knobs (port, database path, CORS origins) out of the
  binary. A missing config file is not an error - defaults apply, and
  command-line flags in cmd/server override whatever was loaded.
*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           int      `yaml:"port"`
	DatabasePath   string   `yaml:"database_path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Port:         8080,
		DatabasePath: "timesheet.db",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:8080",
		},
	}
}

// Load reads the config file at path. A missing file yields defaults;
// a present but malformed file is an error (silent misconfiguration of
// a payroll system is worse than failing to start).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config %s: invalid port %d", path, cfg.Port)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = Default().DatabasePath
	}
	return cfg, nil
}
