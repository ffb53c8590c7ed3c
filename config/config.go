// ABOUTME: Application configuration loaded from YAML with environment overrides
// ABOUTME: Chooses the storage backend, import and extraction modes, audit cap and log level
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v2"
)

const (
	AppName  = "leasebook"
	FileName = "config.yaml"

	BackendCharm  = "charm"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

type StoreConfig struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir"`
}

type ImportConfig struct {
	Mode string `yaml:"mode"`
}

type ExtractConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	OAuthToken string `yaml:"-"`
}

type AuditConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output when set. The TUI always logs to a file.
	File string `yaml:"file"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Import  ImportConfig  `yaml:"import"`
	Extract ExtractConfig `yaml:"extract"`
	Audit   AuditConfig   `yaml:"audit"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Store:   StoreConfig{Backend: BackendCharm, DataDir: DefaultDataDir()},
		Import:  ImportConfig{Mode: "simulated"},
		Extract: ExtractConfig{Provider: "none"},
		Audit:   AuditConfig{MaxEntries: 1000},
		Export:  ExportConfig{Dir: xdg.UserDirs.Download},
		Log:     LogConfig{Level: "info"},
		Web:     WebConfig{Port: 8080},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/leasebook/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// DefaultDataDir is $XDG_DATA_HOME/leasebook.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Store.Backend = getEnvString("LEASEBOOK_STORE", c.Store.Backend)
	c.Store.DataDir = getEnvString("LEASEBOOK_DATA_DIR", c.Store.DataDir)
	c.Import.Mode = getEnvString("LEASEBOOK_IMPORT_MODE", c.Import.Mode)
	c.Extract.Provider = getEnvString("LEASEBOOK_EXTRACTOR", c.Extract.Provider)
	c.Log.Level = getEnvString("LEASEBOOK_LOG_LEVEL", c.Log.Level)
	c.Export.Dir = getEnvString("LEASEBOOK_EXPORT_DIR", c.Export.Dir)
	c.Extract.APIKey = getEnvString("GEMINI_API_KEY", getEnvString("API_KEY", c.Extract.APIKey))
	c.Extract.OAuthToken = getEnvString("GOOGLE_OAUTH_TOKEN", c.Extract.OAuthToken)

	if v := os.Getenv("LEASEBOOK_AUDIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LEASEBOOK_AUDIT_MAX %q: %w", v, err)
		}
		c.Audit.MaxEntries = n
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case BackendCharm, BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Audit.MaxEntries < 0 {
		return fmt.Errorf("audit.max_entries must not be negative")
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port %d out of range", c.Web.Port)
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
