// Package config loads and persists the client's settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServer is where the development backend listens.
const DefaultServer = "http://localhost:8081/api"

// Config is the on-disk settings file, ~/.skillsport/config.yaml.
type Config struct {
	// Server is the backend base URL including the /api prefix.
	Server string `yaml:"server"`
	// Timeout bounds each API request.
	Timeout time.Duration `yaml:"timeout"`
	// LogDir overrides the default log location.
	LogDir string `yaml:"log_dir,omitempty"`
	// Verbose enables debug logging without the --verbose flag.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:  DefaultServer,
		Timeout: 15 * time.Second,
	}
}

// DefaultPath returns the settings file location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".skillsport", "config.yaml"), nil
}

// Load reads the settings file, falling back to defaults when it is absent.
// SKILLSPORT_SERVER in the environment overrides the file's server URL.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	if server := os.Getenv("SKILLSPORT_SERVER"); server != "" {
		cfg.Server = server
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return cfg, nil
}

// Save writes the settings file, creating its directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
