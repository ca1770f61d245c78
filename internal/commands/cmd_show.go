package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/client"
	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *App

	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print one code block with its explanations",
		UsageText: "codeblocks show [--json] ID",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := parseID(c.Args().First())
	if err != nil {
		return err
	}

	b, err := cmd.app.Client.GetBlock(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			msg := fmt.Sprintf("code block %d not found", id)
			if cmd.jsonOutput {
				return iojson.WriteError(c.Root().Writer, msg, map[string]any{"id": id})
			}
			return errors.New(msg)
		}
		return fmt.Errorf("get code block: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, b)
	}
	return printBlock(c.Root().Writer, b)
}

// printBlock writes b as numbered code followed by the explanations. Lines
// with an explanation are marked with '*'.
func printBlock(w io.Writer, b codeblock.CodeBlock) error {
	_, _ = fmt.Fprintf(w, "#%d %s [%s]\n\n", b.ID, b.Title, b.Category)

	lines := b.Lines()
	width := len(strconv.Itoa(len(lines)))
	for i, line := range lines {
		marker := " "
		if b.HasExplanation(i + 1) {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %*d | %s\n", marker, width, i+1, line)
	}

	if b.Explanation != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", b.Explanation)
	}

	if len(b.LineExplanations) > 0 {
		_, _ = fmt.Fprintln(w)
		for _, n := range b.LineExplanations.Lines() {
			_, _ = fmt.Fprintf(w, "line %d: %s\n", n, b.LineExplanations[n])
		}
	}
	return nil
}

func parseID(arg string) (int, error) {
	if arg == "" {
		return 0, fmt.Errorf("missing code block id")
	}
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid code block id %q", arg)
	}
	return id, nil
}
