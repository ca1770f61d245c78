package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/codeblocks/internal/client"
)

type RmCmd struct {
	flags *Flags
	app   *App

	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rm",
		Usage:       "Delete a code block",
		UsageText:   "codeblocks rm [--yes] ID",
		Description: "Deletes a code block. Asks for confirmation when run from a terminal unless --yes is given.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}

	if !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := cmd.app.Client.GetBlock(ctx, id)
		if err != nil {
			if client.IsNotFound(err) {
				return fmt.Errorf("code block %d not found", id)
			}
			return fmt.Errorf("get code block: %w", err)
		}

		confirmed := false
		err = huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", b.Title)).
			Description("This cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeBase16()).
			Run()
		if err != nil || !confirmed {
			return nil
		}
	}

	if err := cmd.app.Client.DeleteBlock(ctx, id); err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("code block %d not found", id)
		}
		return fmt.Errorf("delete code block: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Deleted code block #%d\n", id)
	return nil
}
