package commands

import (
	"github.com/colonyops/codeblocks/internal/client"
	"github.com/colonyops/codeblocks/internal/core/config"
)

// App holds what the Before hook builds for every command. Commands are
// registered with a pointer to it before it is populated.
type App struct {
	Config *config.Config
	Client *client.Client
}

// NewApp builds the API client from cfg. A non-empty apiURL overrides
// api.base_url.
func NewApp(cfg *config.Config, apiURL string) *App {
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	return &App{
		Config: cfg,
		Client: client.New(cfg.API.BaseURL, client.WithTimeout(cfg.API.Timeout)),
	}
}
