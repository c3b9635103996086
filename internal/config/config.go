// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the CLI configuration loadable from a JSON file. All fields are
// optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty"`    // Path to job description text file

	// Session
	Company string `json:"company,omitempty"` // Company the interview targets

	// Behavior
	APIKey  string   `json:"api_key,omitempty"` // Model API key
	Models  []string `json:"models,omitempty"`  // Ordered model fallback list
	Port    int      `json:"port,omitempty"`    // HTTP server port
	Verbose bool     `json:"verbose,omitempty"` // Print detailed output
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that configured values are usable. Required-field checks
// happen after merging with CLI flags, not here.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0,65535]")
	}
	for _, path := range []string{c.Resume, c.Job} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", path)
		}
	}
	return nil
}

// MergeWithDefaults fills empty fields from defaults. CLI flags always win
// for bools, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Company == "" {
		result.Company = defaults.Company
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if len(result.Models) == 0 {
		result.Models = defaults.Models
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	return result
}
