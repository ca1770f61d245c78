package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *App

	// flags
	jsonOutput bool
	search     string
	category   string
	categories bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List code blocks",
		UsageText: "codeblocks ls [--search TEXT] [--category GLOB] [--json] [--categories]",
		Description: `Displays a table of code blocks with their id, title, category, and the
number of annotated lines.

--search matches title or category, ignoring case. --category takes a glob
such as "go*" or "{go,rust}". Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "only blocks whose title or category contains TEXT",
				Destination: &cmd.search,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "only blocks whose category matches the glob",
				Destination: &cmd.category,
			},
			&cli.BoolFlag{
				Name:        "categories",
				Usage:       "list the distinct categories instead of blocks",
				Destination: &cmd.categories,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	if cmd.categories {
		cats, err := cmd.app.Client.Categories(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		if cmd.jsonOutput {
			return iojson.WriteLine(out, cats)
		}
		for _, cat := range cats {
			_, _ = fmt.Fprintln(out, cat)
		}
		return nil
	}

	blocks, err := cmd.app.Client.ListBlocks(ctx)
	if err != nil {
		return fmt.Errorf("list code blocks: %w", err)
	}

	blocks, err = filterBlocks(blocks, cmd.search, cmd.category)
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No code blocks found\n")
		}
		return nil
	}

	if cmd.jsonOutput {
		for _, b := range blocks {
			if err := iojson.WriteLine(out, b); err != nil {
				return fmt.Errorf("encode code block: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tANNOTATED")
	for _, b := range blocks {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", b.ID, b.Title, b.Category, len(b.LineExplanations))
	}
	return w.Flush()
}

// filterBlocks applies the search text and the category glob.
func filterBlocks(blocks []codeblock.CodeBlock, search, pattern string) ([]codeblock.CodeBlock, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid category pattern %q", pattern)
	}

	out := make([]codeblock.CodeBlock, 0, len(blocks))
	for _, b := range codeblock.Filter(blocks, search, "") {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, b.Category); !ok {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}
