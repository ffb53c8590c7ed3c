// ABOUTME: Configuration for the Charm KV portfolio backend
// ABOUTME: Server host and auto-sync preferences stored beside the portfolio data

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the public charm cloud.
	DefaultCharmHost = "cloud.charm.sh"

	// AppName names the Charm KV database.
	AppName = "leasebook"

	// ConfigFileName is where the charm settings live inside the data dir.
	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	Host string `json:"host,omitempty"`

	// AutoSync pushes to the server after every portfolio save.
	AutoSync bool `json:"auto_sync"`

	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`

	dir string
}

// DefaultConfig returns a config pointing at the public server with
// auto-sync on.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// DefaultDir is the XDG data directory used when none is configured.
func DefaultDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// LoadConfig reads the charm config from dir. A missing or unreadable file
// yields defaults; only I/O errors other than "not found" are returned.
func LoadConfig(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.dir = dir
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// a broken config file falls back to defaults
		cfg = DefaultConfig()
	}
	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}
	if cfg.StaleThreshold == 0 {
		cfg.StaleThreshold = kv.DefaultStaleThreshold
	}
	if host := os.Getenv("LEASEBOOK_CHARM_HOST"); host != "" {
		cfg.Host = host
	}
	cfg.dir = dir
	return cfg, nil
}

// Save writes the config back to its directory.
func (c *Config) Save() error {
	dir := c.dir
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0600)
}

// SetAutoSync enables or disables auto-sync and saves.
func (c *Config) SetAutoSync(enabled bool) error {
	c.AutoSync = enabled
	return c.Save()
}
