package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/core/styles"
	"github.com/colonyops/codeblocks/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	app    *App
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags, app *App) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags, app: app}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "codeblocks config validate [options]",
				Description: "Validates the configuration file, checking URLs, listen addresses, and directories.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	issues := validationIssues(cmd.app.Config.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cmd.app.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationIssue          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}
		if err := iojson.WriteWith(c.Root().Writer, os.Stderr, out); err != nil {
			return err
		}
	} else {
		printValidation(c.Root().Writer, cmd.flags.ConfigPath, issues, warnings)
	}

	if len(issues) > 0 {
		return fmt.Errorf("configuration has %d error(s)", len(issues))
	}
	return nil
}

// validationIssues flattens a ValidateDeep result into one issue per field.
func validationIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Field: "config", Message: err.Error()}}
	}
	out := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}

func printValidation(w io.Writer, path string, issues []validationIssue, warnings []config.ValidationWarning) {
	_, _ = lipgloss.Fprintln(w, styles.CommandHeaderStyle.Render("Config: ")+styles.CommandStyle.Render(path))

	for _, is := range issues {
		_, _ = lipgloss.Fprintf(w, "  %s %s: %s\n", styles.ErrorTextStyle.Render("✗"), is.Field, is.Message)
	}
	for _, wr := range warnings {
		_, _ = lipgloss.Fprintf(w, "  %s %s.%s: %s\n", styles.WarningTextStyle.Render("!"), wr.Category, wr.Item, wr.Message)
	}

	if len(issues) == 0 {
		_, _ = lipgloss.Fprintf(w, "  %s configuration is valid\n", styles.SuccessTextStyle.Render("✓"))
	}
}
