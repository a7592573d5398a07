package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// standardsCommand lists the built-in venue standards.
func (c *CLI) standardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the built-in venue standards and their bands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, std := range venue.All() {
				if i > 0 {
					fmt.Println()
				}
				printStandard(std)
			}
			return nil
		},
	}
}

func printStandard(std venue.Standard) {
	name := std.Name
	if name == venue.DefaultName {
		name += " (default)"
	}
	fmt.Println(StyleTitle.Render(name) + " " + StyleDim.Render(std.Description))

	s := std.Screen
	printKeyValue("screen", fmt.Sprintf("%g–%g in high, %g in wide, reference %s", s.Bottom, s.Top, s.Width, s.Reference))
	printKeyValue("sightline", fmt.Sprintf("head %g in, clearance ≥ %g in", s.Thresholds.HeadAllowance, s.Thresholds.MinClearance))
	printKeyValue("rows", fmt.Sprintf("ear %g–%g in, riser ≤ %g in", s.Thresholds.EarHeight.Min, s.Thresholds.EarHeight.Max, s.Thresholds.MaxRiser))
	fmt.Println(bandTable(s.Thresholds))
}

// bandTable shows the vertical and horizontal angle ranges per status.
func bandTable(th sightline.Thresholds) string {
	rows := make([][]string, 0, len(sightline.Statuses)-1)
	for _, st := range sightline.Statuses {
		if st == sightline.StatusFail {
			continue
		}
		v, h := th.Vertical.Tier(st), th.Horizontal.Tier(st)
		rows = append(rows, []string{
			statusText(st),
			fmt.Sprintf("%g° to %g°", v.Min, v.Max),
			fmt.Sprintf("%g° to %g°", h.Min, h.Max),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Status", "Vertical", "Horizontal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
