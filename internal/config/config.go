// Package config holds the seqguard CLI configuration: which violation
// policy to install and how the tokens command splits its input.
// Precedence is defaults, then the config file, then SEQGUARD_*
// environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Violation policies.
const (
	PolicyLog    = "log"    // log the record and continue (default)
	PolicyAbort  = "abort"  // panic on the first violation
	PolicySilent = "silent" // drop records, rely on sentinels
)

// Config holds all seqguard CLI configuration.
type Config struct {
	Violation ViolationConfig `yaml:"violation"`
	Tokens    TokensConfig    `yaml:"tokens"`
}

// ViolationConfig selects the installed constraint handler.
type ViolationConfig struct {
	Policy string `yaml:"policy"`
}

// TokensConfig configures the tokens command.
type TokensConfig struct {
	// Delimiters is the byte set tokens are split on.
	Delimiters string `yaml:"delimiters"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Violation: ViolationConfig{Policy: PolicyLog},
		Tokens:    TokensConfig{Delimiters: " \t"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets SEQGUARD_* variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SEQGUARD_VIOLATION_POLICY"); v != "" {
		c.Violation.Policy = v
	}
	if v := os.Getenv("SEQGUARD_DELIMITERS"); v != "" {
		c.Tokens.Delimiters = v
	}
}

// Validate rejects configurations the CLI cannot act on.
func (c *Config) Validate() error {
	switch c.Violation.Policy {
	case PolicyLog, PolicyAbort, PolicySilent:
	default:
		return fmt.Errorf("unknown violation policy %q (want %s, %s, or %s)",
			c.Violation.Policy, PolicyLog, PolicyAbort, PolicySilent)
	}
	if c.Tokens.Delimiters == "" {
		return fmt.Errorf("tokens.delimiters must not be empty")
	}
	return nil
}
