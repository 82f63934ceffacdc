// Package config provides configuration management for shipit.
// Configuration is resolved once at startup with the following precedence:
// built-in defaults → config file → environment variables.
// The resulting Config is immutable and threaded through all calls.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values used when neither the config file nor the environment
// provides an override.
const (
	DefaultDevBranch   = "dev"
	DefaultMainBranch  = "main"
	DefaultPRLabel     = "codex"
	DefaultDestination = "platform=iOS Simulator,name=iPhone 17"
	DefaultUpdateURL   = "https://github.com/shipit-cli/shipit/releases/latest/download/shipit"
)

// Config holds the resolved settings for a single shipit invocation.
type Config struct {
	// Scheme is the build scheme to use; empty means auto-detect.
	Scheme string
	// Destination is the simulator destination descriptor for test runs.
	Destination string
	// DevBranch is the long-lived development branch.
	DevBranch string
	// MainBranch is the long-lived main branch.
	MainBranch string
	// PRLabel selects the target pull request when no number is given.
	PRLabel string
	// UpdateURL is where the update command downloads the binary from.
	UpdateURL string

	sources []string
}

// Sources returns a human-readable list of where settings came from.
func (c *Config) Sources() []string {
	return c.sources
}

// fileConfig mirrors the optional yaml config file.
type fileConfig struct {
	Scheme      string `yaml:"scheme"`
	Destination string `yaml:"destination"`
	DevBranch   string `yaml:"dev_branch"`
	MainBranch  string `yaml:"main_branch"`
	PRLabel     string `yaml:"pr_label"`
	UpdateURL   string `yaml:"update_url"`
}

// DefaultConfigPath returns the path of the optional config file.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "shipit", "config.yaml")
	}
	return filepath.Join(home, ".config", "shipit", "config.yaml")
}

// Load resolves the configuration from defaults, the default config file
// location, and the environment.
func Load() (*Config, error) {
	return LoadWithFile(DefaultConfigPath())
}

// LoadWithFile resolves the configuration using an explicit config file path.
// A missing file is not an error; a malformed one is.
func LoadWithFile(path string) (*Config, error) {
	cfg := &Config{
		Destination: DefaultDestination,
		DevBranch:   DefaultDevBranch,
		MainBranch:  DefaultMainBranch,
		PRLabel:     DefaultPRLabel,
		UpdateURL:   DefaultUpdateURL,
		sources:     []string{"defaults"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.mergeFile(fc)
			cfg.sources = append(cfg.sources, path)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(fc fileConfig) {
	if fc.Scheme != "" {
		c.Scheme = fc.Scheme
	}
	if fc.Destination != "" {
		c.Destination = fc.Destination
	}
	if fc.DevBranch != "" {
		c.DevBranch = fc.DevBranch
	}
	if fc.MainBranch != "" {
		c.MainBranch = fc.MainBranch
	}
	if fc.PRLabel != "" {
		c.PRLabel = fc.PRLabel
	}
	if fc.UpdateURL != "" {
		c.UpdateURL = fc.UpdateURL
	}
}

// applyEnv applies environment variable overrides.
// Env vars take precedence over the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("SHIPIT_SCHEME"); v != "" {
		c.Scheme = v
		c.sources = append(c.sources, "env:SHIPIT_SCHEME")
	}
	if v := os.Getenv("SHIPIT_DESTINATION"); v != "" {
		c.Destination = v
		c.sources = append(c.sources, "env:SHIPIT_DESTINATION")
	}
	if v := os.Getenv("SHIPIT_DEV_BRANCH"); v != "" {
		c.DevBranch = v
		c.sources = append(c.sources, "env:SHIPIT_DEV_BRANCH")
	}
	if v := os.Getenv("SHIPIT_MAIN_BRANCH"); v != "" {
		c.MainBranch = v
		c.sources = append(c.sources, "env:SHIPIT_MAIN_BRANCH")
	}
	if v := os.Getenv("SHIPIT_PR_LABEL"); v != "" {
		c.PRLabel = v
		c.sources = append(c.sources, "env:SHIPIT_PR_LABEL")
	}
	if v := os.Getenv("SHIPIT_UPDATE_URL"); v != "" {
		c.UpdateURL = v
		c.sources = append(c.sources, "env:SHIPIT_UPDATE_URL")
	}
}
