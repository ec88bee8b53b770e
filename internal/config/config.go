// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from the
// environment.
type Config struct {
	Port            int    `json:"port,omitempty"`              // HTTP listen port
	DatabaseURL     string `json:"database_url,omitempty"`      // PostgreSQL connection URL
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`    // Gemini API key (empty enables fallback generation)
	StorageRoot     string `json:"storage_root,omitempty"`      // Directory for uploaded files
	MarketSourceURL string `json:"market_source_url,omitempty"` // HTML source for trending-skill data

	// Mail
	SMTPHost     string `json:"smtp_host,omitempty"`
	SMTPPort     int    `json:"smtp_port,omitempty"`
	SMTPUsername string `json:"smtp_username,omitempty"`
	SMTPPassword string `json:"smtp_password,omitempty"`
	SMTPFrom     string `json:"smtp_from,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SMTPPort < 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("config error: 'smtp_port' must be between 0 and 65535")
	}
	if c.SMTPHost != "" && c.SMTPFrom == "" {
		return fmt.Errorf("config error: 'smtp_from' is required when 'smtp_host' is set")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. CLI flags and environment variables populate defaults, so file
// values win where present.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.StorageRoot == "" {
		result.StorageRoot = defaults.StorageRoot
	}
	if result.MarketSourceURL == "" {
		result.MarketSourceURL = defaults.MarketSourceURL
	}
	if result.SMTPHost == "" {
		result.SMTPHost = defaults.SMTPHost
	}
	if result.SMTPPort == 0 {
		result.SMTPPort = defaults.SMTPPort
	}
	if result.SMTPUsername == "" {
		result.SMTPUsername = defaults.SMTPUsername
	}
	if result.SMTPPassword == "" {
		result.SMTPPassword = defaults.SMTPPassword
	}
	if result.SMTPFrom == "" {
		result.SMTPFrom = defaults.SMTPFrom
	}

	return result
}
