// Package config persists the small amount of tool-level configuration
// that lives outside any workspace: the default workspace path and
// logging preferences.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Config holds the application configuration
type Config struct {
	DefaultWorkspace string `json:"default_workspace,omitempty"` // Workspace used when --workspace is not given
	DebugLogging     bool   `json:"debug_logging,omitempty"`     // Enable debug logging by default

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scribe"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific path. Used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath, data, 0644)
}

// GetDefaultWorkspace returns the configured default workspace path
func (c *Config) GetDefaultWorkspace() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DefaultWorkspace
}

// SetDefaultWorkspace sets the default workspace path
func (c *Config) SetDefaultWorkspace(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultWorkspace = path
}

// GetDebugLogging returns whether debug logging is enabled by default
func (c *Config) GetDebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DebugLogging
}

// SetDebugLogging sets the default debug logging preference
func (c *Config) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DebugLogging = enabled
}
