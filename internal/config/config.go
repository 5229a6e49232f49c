package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the task hunter application.
// It is built once at startup and passed down explicitly; there is no
// process-wide mutable state.
type Config struct {
	// Directory is where the database (and optional config file) live.
	Directory string `yaml:"directory"`
	// DatabaseName is the sqlite database filename inside Directory.
	DatabaseName string `yaml:"database_name"`
	// Editor is the command invoked by the edit workflow.
	Editor string `yaml:"editor"`
	// Silent suppresses informational output. Errors still go to stderr.
	Silent bool `yaml:"silent"`
	// Debug enables debug tracing and full error detail.
	Debug bool `yaml:"debug"`
}

// NewConfig creates a configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Directory:    filepath.Join(homeDir, ".thunter"),
		DatabaseName: "thunter_database.db",
		Editor:       "vim",
	}
}

// Load builds the configuration using the cascading strategy:
// defaults, then an optional YAML file, then environment variables.
// Command line flags are applied afterwards by the CLI layer.
func Load() (*Config, error) {
	cfg := NewConfig()

	path := os.Getenv("THUNTER_CONFIG")
	if path == "" {
		candidate := filepath.Join(cfg.Directory, "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.loadFromEnvironment()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadFromEnvironment applies environment variable overrides
func (c *Config) loadFromEnvironment() {
	if dir := os.Getenv("THUNTER_DIRECTORY"); dir != "" {
		c.Directory = expandHome(dir)
	}
	if name := os.Getenv("THUNTER_DATABASE_NAME"); name != "" {
		c.DatabaseName = name
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		c.Editor = editor
	}
	if silent := os.Getenv("THUNTER_SILENT"); silent != "" {
		c.Silent = isTruthy(silent)
	}
	if debug := os.Getenv("THUNTER_DEBUG"); debug != "" {
		c.Debug = isTruthy(debug)
	}
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Directory == "" {
		return &ConfigError{Field: "directory", Message: "directory cannot be empty"}
	}
	if c.DatabaseName == "" {
		return &ConfigError{Field: "database_name", Message: "database filename cannot be empty"}
	}
	if strings.ContainsRune(c.DatabaseName, os.PathSeparator) {
		return &ConfigError{Field: "database_name", Message: "database filename cannot contain a path separator"}
	}
	if c.Editor == "" {
		return &ConfigError{Field: "editor", Message: "editor cannot be empty"}
	}
	return nil
}

// DatabasePath returns the full path to the sqlite database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Directory, c.DatabaseName)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
