package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/codeblocks/internal/data/db"
)

// DBCmd manages the SQLite database used by `serve --storage sqlite`.
type DBCmd struct {
	flags *Flags
	app   *App

	steps int
	yes   bool
}

// NewDBCmd creates a new db command.
func NewDBCmd(flags *Flags, app *App) *DBCmd {
	return &DBCmd{flags: flags, app: app}
}

// Register adds the db command to the application.
func (cmd *DBCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "db",
		Usage: "Inspect or downgrade the SQLite database",
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "Show the database file and schema version",
				UsageText: "codeblocks db status",
				Action:    cmd.status,
			},
			{
				Name:      "rollback",
				Usage:     "Revert the newest schema migrations",
				UsageText: "codeblocks db rollback [--steps N] [--yes]",
				Description: `Reverts schema migrations so an older codeblocks build can open the
database. The next 'serve --storage sqlite' migrates forward again.`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "steps",
						Aliases:     []string{"n"},
						Usage:       "number of migrations to revert",
						Value:       1,
						Destination: &cmd.steps,
					},
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.rollback,
			},
		},
	})

	return app
}

func (cmd *DBCmd) open() (*db.DB, error) {
	if err := os.MkdirAll(cmd.flags.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	database, err := db.Open(cmd.flags.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return database, nil
}

func (cmd *DBCmd) status(ctx context.Context, c *cli.Command) error {
	database, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	version, err := database.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	latest, err := db.LatestVersion()
	if err != nil {
		return err
	}

	w := c.Root().Writer
	_, _ = fmt.Fprintf(w, "Database: %s\n", database.Path())
	_, _ = fmt.Fprintf(w, "Schema:   %d of %d\n", version, latest)
	return nil
}

func (cmd *DBCmd) rollback(ctx context.Context, c *cli.Command) error {
	database, err := cmd.open()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Revert %d migration(s) on %s?", cmd.steps, database.Path())).
			Description("Reverting the first migration drops every stored code block.").
			Affirmative("Revert").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeBase16()).
			Run()
		if err != nil || !confirmed {
			return nil
		}
	}

	version, err := database.Rollback(ctx, cmd.steps)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}

	log.Info().Int("steps", cmd.steps).Int("version", version).Msg("database rolled back")
	_, _ = fmt.Fprintf(c.Root().Writer, "Rolled back to schema version %d\n", version)
	return nil
}
