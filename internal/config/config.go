package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/noelruault/ecsh/internal/session"
	"github.com/noelruault/ecsh/internal/vault"
)

// Config holds the application configuration
type Config struct {
	// Region is used when neither --region nor the bridged credentials name one.
	Region       string `yaml:"region"`
	VaultBinary  string `yaml:"vault_binary"`
	AWSBinary    string `yaml:"aws_binary"`
	ShellCommand string `yaml:"shell_command"`
	EndpointURL  string `yaml:"endpoint_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		VaultBinary:  vault.DefaultBinary,
		AWSBinary:    "aws",
		ShellCommand: session.DefaultCommand,
	}
}

// DefaultPath returns the config file location, ~/.config/ecsh/config.yaml on
// Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ecsh", "config.yaml")
}

// LoadConfig loads the configuration from path, then applies ECSH_*
// environment overrides. A missing file leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.VaultBinary = envOrDefault("ECSH_VAULT_BIN", cfg.VaultBinary)
	cfg.AWSBinary = envOrDefault("ECSH_AWS_BIN", cfg.AWSBinary)
	cfg.ShellCommand = envOrDefault("ECSH_SHELL_COMMAND", cfg.ShellCommand)
	cfg.EndpointURL = envOrDefault("ECSH_ENDPOINT_URL", cfg.EndpointURL)
	return cfg, nil
}

// ResolveRegion picks the region for the session: the explicit flag, the
// region the vault exported, the environment, then the config file. An empty
// result leaves the choice to the SDK.
func (c *Config) ResolveRegion(flag, bridged string) string {
	for _, r := range []string{flag, bridged, GetDefaultRegion(), c.Region} {
		if r != "" {
			return r
		}
	}
	return ""
}

// GetDefaultRegion returns the region set in the environment, if any.
func GetDefaultRegion() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return os.Getenv("AWS_DEFAULT_REGION")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
