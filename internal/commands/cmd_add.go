package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *App

	input      iojson.FileReader[codeblock.Input]
	jsonOutput bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Create a code block",
		UsageText: "codeblocks add [-f FILE] [--json]",
		Description: `Creates a code block from a JSON object read from --file or piped stdin:

  {"title": "...", "category": "go", "code": "...", "explanation": "...",
   "lineExplanations": {"1": "..."}}

When stdin is a terminal and no file is given, an interactive form prompts
for the fields instead.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created block as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	var (
		in  codeblock.Input
		err error
	)
	if cmd.input.Interactive() {
		in, err = runAddForm()
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
	} else {
		in, err = cmd.input.Read()
	}
	if err != nil {
		return err
	}

	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid code block: %w", err)
	}

	b, err := cmd.app.Client.CreateBlock(ctx, in)
	if err != nil {
		return fmt.Errorf("create code block: %w", err)
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, b)
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "Created code block #%d %s\n", b.ID, b.Title)
	return nil
}

func runAddForm() (codeblock.Input, error) {
	var (
		in               codeblock.Input
		lineExplanations string
	)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(codeblock.MaxTitleSize).
				Validate(codeblock.ValidateTitle).
				Value(&in.Title),
			huh.NewInput().
				Title("Category").
				Description("Language or topic, e.g. go").
				CharLimit(codeblock.MaxCategorySize).
				Value(&in.Category),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Code").
				Lines(12).
				Value(&in.Code),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Explanation").
				Description("Markdown").
				Value(&in.Explanation),
			huh.NewText().
				Title("Line explanations").
				Description("One per line as N:text").
				Value(&lineExplanations),
		),
	).WithTheme(huh.ThemeBase16()).Run()
	if err != nil {
		return codeblock.Input{}, err
	}

	in.LineExplanations = codeblock.ParseLineExplanations(lineExplanations)
	return in, nil
}
