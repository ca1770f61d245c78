package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/data/stores"
	"github.com/colonyops/codeblocks/internal/server"
	"github.com/colonyops/codeblocks/internal/store/jsonfile"
)

const shutdownTimeout = 5 * time.Second

type ServeCmd struct {
	flags *Flags
	app   *App

	addr    string
	storage string
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags, app *App) *ServeCmd {
	return &ServeCmd{flags: flags, app: app}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the code block REST API",
		UsageText: "codeblocks serve [--addr ADDR] [--storage json|sqlite]",
		Description: `Serves /codeblocks/ for the viewer and other clients.

With json storage the blocks live in a single file (server.data_file, default
<data-dir>/codeblocks.json) that may be edited by hand while the server runs.
With sqlite storage they live in <data-dir>/codeblocks.db.

Logs go to stderr unless --log-file is set.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (overrides server.addr)",
				Sources:     cli.EnvVars("CODEBLOCKS_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage backend: json or sqlite (overrides server.storage)",
				Sources:     cli.EnvVars("CODEBLOCKS_STORAGE"),
				Destination: &cmd.storage,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.flags.LogFile == "" {
		if err := cmd.flags.SetupLogging(""); err != nil {
			return err
		}
	}

	cfg := cmd.app.Config.Server
	if cmd.addr != "" {
		cfg.Addr = cmd.addr
	}
	if cmd.storage != "" {
		cfg.Storage = cmd.storage
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := cmd.openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := server.New(store, cfg)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info().Str("addr", srv.Addr()).Str("storage", cfg.Storage).Msg("api server ready")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}
	return nil
}

// openStore opens the configured backend. The json store is watched for
// outside edits until ctx is cancelled.
func (cmd *ServeCmd) openStore(ctx context.Context, kind string) (codeblock.Store, func() error, error) {
	switch kind {
	case config.StorageSQLite:
		store, closeFn, err := stores.Open(cmd.app.Config.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return store, closeFn, nil

	case config.StorageJSON:
		store := jsonfile.NewBlockStore(cmd.app.Config.DataFile())
		if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		go func() {
			if err := store.Watch(ctx, nil); err != nil {
				log.Warn().Err(err).Str("path", store.Path()).Msg("data file watch stopped")
			}
		}()
		return store, func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage %q, expected %q or %q", kind, config.StorageJSON, config.StorageSQLite)
}
