package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/export"
)

type ExportCmd struct {
	flags *Flags
	app   *App

	out string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write every code block to a JSON backup",
		UsageText: "codeblocks export [--out PATH]",
		Description: `Fetches the full list and writes it as an indented JSON array, the same
file the viewer writes with 'x'. Defaults to <export.dir>/` + export.FileName + `.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "backup file path",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	blocks, err := cmd.app.Client.ListBlocks(ctx)
	if err != nil {
		return fmt.Errorf("list code blocks: %w", err)
	}

	var path string
	if cmd.out != "" {
		path, err = export.WriteFile(cmd.out, blocks)
	} else {
		path, err = export.Write(cmd.app.Config.Export.Dir, blocks)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Exported %d code blocks to %s\n", len(blocks), path)
	return nil
}
