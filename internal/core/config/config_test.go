package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, StorageJSON, cfg.Server.Storage)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 34, cfg.TUI.SidebarWidth)
	assert.True(t, cfg.TUI.MarkdownEnabled())
	assert.True(t, cfg.TUI.HighlightEnabled())
	assert.Equal(t, ".", cfg.Export.Dir)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, StorageJSON, cfg.Server.Storage)
}

func TestLoad_FileOverridesAndDefaultsFill(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://api.internal:9000
  timeout: 3s
server:
  storage: sqlite
tui:
  theme: gruvbox
  markdown: false
export:
  dir: /tmp/backups
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, StorageSQLite, cfg.Server.Storage)
	assert.Equal(t, ":8000", cfg.Server.Addr, "unset addr keeps default")
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.False(t, cfg.TUI.MarkdownEnabled())
	assert.True(t, cfg.TUI.HighlightEnabled())
	assert.Equal(t, "/tmp/backups", cfg.Export.Dir)
}

func TestLoad_DataDirNotReadFromFile(t *testing.T) {
	path := writeConfig(t, "DataDir: /elsewhere\n")
	dataDir := t.TempDir()

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "bad yaml", body: "api: [", wantErr: "parse config file"},
		{name: "unknown storage", body: "server:\n  storage: redis\n", wantErr: "server.storage"},
		{name: "unknown theme", body: "tui:\n  theme: neon\n", wantErr: "tui.theme"},
		{name: "narrow sidebar", body: "tui:\n  sidebar_width: 4\n", wantErr: "tui.sidebar_width"},
		{name: "negative timeout", body: "api:\n  timeout: -1s\n", wantErr: "api.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}

func TestDataFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join("var", "lib", "codeblocks")
	assert.Equal(t, filepath.Join("var", "lib", "codeblocks", "codeblocks.json"), cfg.DataFile())

	cfg.Server.DataFile = "/srv/blocks.json"
	assert.Equal(t, "/srv/blocks.json", cfg.DataFile())
}

func TestServerConfig_AllowsOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    bool
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "http://a.test", want: true},
		{name: "listed", origins: []string{"http://a.test"}, origin: "http://a.test", want: true},
		{name: "not listed", origins: []string{"http://a.test"}, origin: "http://b.test", want: false},
		{name: "none", origins: nil, origin: "http://a.test", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ServerConfig{CORSOrigins: tt.origins}
			assert.Equal(t, tt.want, s.AllowsOrigin(tt.origin))
		})
	}
}
