package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sightline.

Bash:
  $ source <(sightline completion bash)

Zsh:
  $ sightline completion zsh > "${fpath[1]}/_sightline"

Fish:
  $ sightline completion fish > ~/.config/fish/completions/sightline.fish

PowerShell:
  PS> sightline completion powershell | Out-String | Invoke-Expression

Standard names and --fail-on statuses complete as well.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeStandards completes preset names for --standard.
func completeStandards(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return venue.Names(), cobra.ShellCompDirectiveNoFileComp
}

// completeStatuses completes status labels for --fail-on.
func completeStatuses(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(sightline.Statuses))
	for i, s := range sightline.Statuses {
		names[i] = s.String()
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
