// Package llm provides the gateway to the text-generation model, including
// failure classification, bounded retry, and ordered model fallback.
package llm

import (
	"fmt"
	"os"
	"time"
)

// Environment variables recognized for the model API credential.
// EnvAPIKey is the primary name; EnvAPIKeyLegacy is kept for older deployments.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvAPIKeyLegacy = "GOOGLE_API_KEY"
)

// Config holds the gateway configuration. The credential and model list are
// explicit here; the gateway never reads the environment itself.
type Config struct {
	// APIKey is the model API credential. Required.
	APIKey string
	// Models is the ordered fallback list of model identifiers. Callers walk
	// this list when a model id is rejected as unknown.
	Models []string
	// MaxAttempts bounds retries of a single model call on transient failures.
	MaxAttempts int
	// BaseDelay is the first backoff wait when the error carries no hint.
	BaseDelay time.Duration
	// MaxDelay caps every backoff wait, hinted or not.
	MaxDelay time.Duration
	// CallTimeout is the per-attempt deadline applied around each model call.
	CallTimeout time.Duration
}

// DefaultModels is the ordered model fallback list used when none is configured.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
}

// DefaultConfig returns a Config with the default model list and retry policy.
// The APIKey is left empty; resolve it with ResolveAPIKey or set it directly.
func DefaultConfig() *Config {
	return &Config{
		Models:      append([]string(nil), DefaultModels...),
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		CallTimeout: 60 * time.Second,
	}
}

// WithAPIKey returns a copy of the config with the credential set.
func (c *Config) WithAPIKey(key string) *Config {
	out := *c
	out.Models = append([]string(nil), c.Models...)
	out.APIKey = key
	return &out
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return &ConfigError{Reason: "missing API key"}
	}
	if len(c.Models) == 0 {
		return &ConfigError{Reason: "no models configured"}
	}
	if c.MaxAttempts < 1 {
		return &ConfigError{Reason: fmt.Sprintf("max attempts must be >= 1, got %d", c.MaxAttempts)}
	}
	return nil
}

// ResolveAPIKey reads the model credential from the environment, checking the
// primary variable first and the legacy alias second. A missing credential is
// a ConfigError, not a crash: callers surface it as a configuration failure.
func ResolveAPIKey() (string, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}
	if key := os.Getenv(EnvAPIKeyLegacy); key != "" {
		return key, nil
	}
	return "", &ConfigError{Reason: fmt.Sprintf("neither %s nor %s is set", EnvAPIKey, EnvAPIKeyLegacy)}
}
