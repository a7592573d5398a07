package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/pipeline"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// analyzeFlags holds the flags of the analyze command that are not pipeline
// options.
type analyzeFlags struct {
	formats string
	output  string
	noCache bool
	failOn  string
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var flags analyzeFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [rows.json|rows.toml]",
		Short: "Evaluate seating rows against a venue standard",
		Long: `Evaluate seating rows against a venue standard.

Each row is checked for its vertical and horizontal viewing angle and for
sightline clearance over the row in front. Results are printed as a table;
--format json,svg additionally writes the report and a section drawing.

Results are cached locally for faster subsequent runs.`,
		Example: `  sightline analyze room.json
  sightline analyze room.toml --standard home-theater -f table,svg
  sightline analyze room.json --venue venue.toml -f json -o report.json
  sightline analyze room.json --fail-on warning`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): table (default), json, svg (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.failOn, "fail-on", "", "exit with an error if any row is at this status or worse")
	_ = cmd.RegisterFlagCompletionFunc("fail-on", completeStatuses)

	addStandardFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "SVG width in pixels")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "SVG theme: light (default), dark")
	cmd.Flags().StringVar(&opts.Title, "title", "", "SVG title")
	cmd.Flags().BoolVar(&opts.Grid, "grid", false, "draw a distance grid in the SVG")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")

	return cmd
}

// addStandardFlags registers the flags that select the venue standard.
func addStandardFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Standard, "standard", "s", "", "venue standard preset (see 'sightline standards')")
	cmd.Flags().StringVar(&opts.VenuePath, "venue", "", "venue TOML file; its base key picks the preset it extends")
	_ = cmd.RegisterFlagCompletionFunc("standard", completeStandards)
	cmd.MarkFlagsMutuallyExclusive("standard", "venue")
}

// runAnalyze evaluates the rows in input and prints or writes the results.
func (c *CLI) runAnalyze(ctx context.Context, input string, opts pipeline.Options, flags analyzeFlags) error {
	showTable, artifacts := splitFormats(parseFormats(flags.formats))
	if err := pipeline.ValidateFormats(artifacts); err != nil {
		return err
	}
	var failOn *sightline.Status
	if flags.failOn != "" {
		s, err := sightline.ParseStatus(flags.failOn)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "--fail-on")
		}
		failOn = &s
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.RowsPath = input
	opts.Formats = artifacts
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Analyzing rows...")
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %d rows against %s", len(res.Report.Rows), res.Standard.Name))

	if showTable {
		printReport(res.Standard.Name, res.Report, res.CacheInfo.AnalyzeHit)
	}

	paths, err := writeArtifacts(res.Artifacts, artifacts, input, flags.output)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		printSuccess("Wrote %d file(s)", len(paths))
		for _, p := range paths {
			printFile(p)
		}
	}

	if failOn != nil {
		if worst := res.Report.Worst(); !failOn.WorseThan(worst) {
			return fmt.Errorf("worst row status is %s (--fail-on %s)", worst, *failOn)
		}
	}
	return nil
}

// printReport prints the analysis table, the row notes and a summary line.
func printReport(standard string, report *sightline.Report, cached bool) {
	fmt.Println(StyleTitle.Render("Sightline analysis") + " " + StyleDim.Render(standard))
	if len(report.Rows) == 0 {
		printInfo("No rows to analyze")
		return
	}
	fmt.Println(reportTable(report, 0))
	if notes := notesBlock(report); notes != "" {
		fmt.Print(notes)
	}
	fmt.Println(summaryLine(report, cached))
}

// writeArtifacts writes each rendered format to its output path and returns
// the paths written, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(format, input, output, len(formats) > 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath chooses where a format is written. A single format goes to
// output as given; otherwise output (or the input without its extension)
// is a base path that gets ".analysis.<format>" appended.
func artifactPath(format, input, output string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := strings.TrimPrefix(filepath.Ext(base), "."); pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base + ".analysis." + format
}
