// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	// DefaultAPIPath is the API base path on the server.
	DefaultAPIPath = "/api"
)

// Config is the persisted CLI configuration.
type Config struct {
	// Server is the platform base URL, e.g. https://loftiermovies.com
	Server string `yaml:"server"`
	// APIPath overrides the API base path. Defaults to /api.
	APIPath string `yaml:"api_path,omitempty"`
	// Output selects the default list output format (table or json).
	Output string `yaml:"output,omitempty"`
}

// BaseURL joins the server and API path into the gateway base URL.
func (c *Config) BaseURL() string {
	apiPath := c.APIPath
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	return strings.TrimSuffix(c.Server, "/") + "/" + strings.Trim(apiPath, "/")
}

// Load reads the config from baseDir (default ~/.loftier). A missing
// file yields the zero config so flags and env can fill everything in.
func Load(baseDir string) (*Config, error) {
	dir, err := resolveDir(baseDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to baseDir, creating the directory if needed.
func Save(baseDir string, cfg *Config) error {
	dir, err := resolveDir(baseDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFileName), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func resolveDir(baseDir string) (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".loftier"), nil
}
