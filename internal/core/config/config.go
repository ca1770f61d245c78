// Package config handles configuration loading and validation for codeblocks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/codeblocks/internal/core/styles"
)

// Storage backends for the server.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	API     APIConfig    `yaml:"api"`
	Server  ServerConfig `yaml:"server"`
	TUI     TUIConfig    `yaml:"tui"`
	Export  ExportConfig `yaml:"export"`
	DataDir string       `yaml:"-"` // set by caller, not from config file
}

// APIConfig configures the client side of the REST API.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures `codeblocks serve`.
type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	Storage     string   `yaml:"storage"`   // json or sqlite
	DataFile    string   `yaml:"data_file"` // json storage file, defaults to <data-dir>/codeblocks.json
	CORSOrigins []string `yaml:"cors_origins"`
}

// TUIConfig configures the interactive viewer.
type TUIConfig struct {
	Theme        string `yaml:"theme"`
	Markdown     *bool  `yaml:"markdown"`  // render explanations as markdown (default true)
	Highlight    *bool  `yaml:"highlight"` // syntax highlight fullscreen code (default true)
	SidebarWidth int    `yaml:"sidebar_width"`
}

// ExportConfig configures where backups are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// MarkdownEnabled reports whether explanations are rendered as markdown.
func (t TUIConfig) MarkdownEnabled() bool {
	return t.Markdown == nil || *t.Markdown
}

// HighlightEnabled reports whether fullscreen code is syntax highlighted.
func (t TUIConfig) HighlightEnabled() bool {
	return t.Highlight == nil || *t.Highlight
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:        ":8000",
			Storage:     StorageJSON,
			CORSOrigins: []string{"*"},
		},
		TUI: TUIConfig{
			Theme:        styles.DefaultTheme,
			SidebarWidth: 34,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.Storage == "" {
		c.Server.Storage = defaults.Server.Storage
	}
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.SidebarWidth == 0 {
		c.TUI.SidebarWidth = defaults.TUI.SidebarWidth
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}

	if c.Server.Storage != StorageJSON && c.Server.Storage != StorageSQLite {
		return fmt.Errorf("server.storage must be %q or %q, got %q", StorageJSON, StorageSQLite, c.Server.Storage)
	}

	if _, ok := styles.LookupTheme(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not one of %v", c.TUI.Theme, styles.ThemeNames())
	}

	if c.TUI.SidebarWidth < 16 {
		return fmt.Errorf("tui.sidebar_width must be at least 16")
	}

	return nil
}

// DataFile returns the JSON storage path, defaulting into the data directory.
func (c *Config) DataFile() string {
	if c.Server.DataFile != "" {
		return c.Server.DataFile
	}
	return filepath.Join(c.DataDir, "codeblocks.json")
}

// AllowsOrigin reports whether the server should echo CORS headers for origin.
func (s ServerConfig) AllowsOrigin(origin string) bool {
	return slices.Contains(s.CORSOrigins, "*") || slices.Contains(s.CORSOrigins, origin)
}
