package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/core/styles"
)

// NewRoot builds the codeblocks command tree. The Before hook sets up
// logging, loads the config, and populates app for the subcommands.
func NewRoot(flags *Flags, app *App, version string) *cli.Command {
	root := &cli.Command{
		Name:      "codeblocks",
		Usage:     "Browse and annotate code snippets",
		UsageText: "codeblocks [global options] command [command options]",
		Description: `codeblocks keeps code snippets with a general explanation and notes on
individual lines.

Run 'codeblocks' with no arguments to open the interactive viewer.
Run 'codeblocks serve' to start the REST API the viewer talks to.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("CODEBLOCKS_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/codeblocks.log, stderr for serve)",
				Sources:     cli.EnvVars("CODEBLOCKS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("CODEBLOCKS_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("CODEBLOCKS_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "API base URL (overrides api.base_url)",
				Sources:     cli.EnvVars("CODEBLOCKS_API_URL"),
				Destination: &flags.APIURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = flags.DefaultLogFile()
			}
			if err := flags.SetupLogging(logFile); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			// Validation ensures the theme name is known.
			theme, _ := styles.LookupTheme(cfg.TUI.Theme)
			styles.SetTheme(theme)

			// Commands already hold a pointer to app.
			*app = *NewApp(cfg, flags.APIURL)

			log.Debug().Str("config", flags.ConfigPath).Str("api", cfg.API.BaseURL).Msg("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			flags.CloseLogging()
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags, app)

	root = tuiCmd.Register(root)
	root = NewServeCmd(flags, app).Register(root)
	root = NewLsCmd(flags, app).Register(root)
	root = NewShowCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewRmCmd(flags, app).Register(root)
	root = NewExportCmd(flags, app).Register(root)
	root = NewConfigValidateCmd(flags, app).Register(root)
	root = NewDBCmd(flags, app).Register(root)

	// TUI is the default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'codeblocks --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return root
}
