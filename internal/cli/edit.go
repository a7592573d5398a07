package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/sightline/pkg/io"
	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// defaultEditOutput is where the editor saves when started without a file.
const defaultEditOutput = "rows.json"

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "edit [rows.json|rows.toml]",
		Short: "Edit seating rows interactively with live analysis",
		Long: `Edit seating rows interactively with live analysis.

Rows are loaded from the given file, or a single default row is created.
Every change re-runs the analysis. A change that makes a row invalid keeps
the last valid analysis on screen and shows the error until it is fixed.

Press w to save to the input file (or --output).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runEdit(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save rows to (default: the input file, or rows.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addStandardFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	std, err := pipeline.ResolveStandard(opts)
	if err != nil {
		return err
	}

	var rows []sightline.SeatingRow
	if input != "" {
		if rows, err = pkgio.ImportRows(input); err != nil {
			return fmt.Errorf("load rows %s: %w", input, err)
		}
	}
	if output == "" {
		output = input
	}
	if output == "" {
		output = defaultEditOutput
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	analyze := func(rows []sightline.SeatingRow) (*sightline.Report, error) {
		return runner.Analyze(ctx, rows, std.Screen)
	}
	model := NewEditorModel(rows, std.Name, output, analyze)

	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}
	if m, ok := final.(EditorModel); ok {
		if m.Dirty {
			printWarning("Unsaved changes discarded")
		} else if m.Report != nil {
			printReport(std.Name, m.Report, false)
		}
	}
	return nil
}
