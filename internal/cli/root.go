// Package cli implements the sightline command-line interface.
//
// # Commands
//
//   - analyze: evaluate a row file and print a table or write JSON/SVG
//   - edit: interactive row editor with live analysis
//   - serve: run the HTTP API
//   - standards: list the built-in venue standards
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/buildinfo"
	"github.com/matzehuels/sightline/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The --verbose flag switches the CLI logger to debug level and routes
// pipeline and cache events to it.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           appName,
		Short:         "Sightline checks seating rows against a screen",
		Long:          `Sightline evaluates theater seating rows for vertical and horizontal viewing angles and for sightline clearance over the row in front.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.standardsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
