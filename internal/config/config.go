// ABOUTME: Configuration loading and parsing for briefcase
// ABOUTME: Supports a YAML file with environment variable expansion; missing file means defaults

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in storage.backend
const (
	BackendSQLite = "sqlite"
	BackendFiles  = "files"
)

// Config represents the complete briefcase configuration
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects the backend and optionally pins the store location
type StorageConfig struct {
	// Backend is "sqlite" (single database file, home-anchored) or
	// "files" (directory of files, temp-anchored)
	Backend string `yaml:"backend"`

	// Path overrides the resolved store location when set
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Backend: BackendSQLite},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
// A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables become empty strings.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all configuration fields hold supported values.
func (c *Config) Validate() error {
	if c.Storage.Backend != BackendSQLite && c.Storage.Backend != BackendFiles {
		return fmt.Errorf("storage.backend must be %q or %q, got %q",
			BackendSQLite, BackendFiles, c.Storage.Backend)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return nil
}
