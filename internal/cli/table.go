package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/sightline/pkg/sightline"
)

// Column indices of the result table.
const (
	colRow = iota
	colDist
	colEye
	colVVA
	colHVA
	colClearance
	colStatus
)

// headerRow is the row index lipgloss passes to StyleFunc for the header.
const headerRow = -1

var reportHeaders = []string{"Row", "Dist ft", "Eye in", "VVA", "HVA", "Clearance", "Status"}

// reportRows formats one table row per analysis. Cells are plain text; the
// table applies colour.
func reportRows(report *sightline.Report) [][]string {
	rows := make([][]string, 0, len(report.Rows))
	for _, a := range report.Rows {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.RowID),
			fmt.Sprintf("%.1f", a.DistFromScreen),
			fmt.Sprintf("%.1f", a.EyeHeight),
			angleCell(a.VerticalViewingAngle, a.VerticalStatus),
			angleCell(a.HorizontalViewingAngle, a.HorizontalStatus),
			clearanceCell(a),
			presentStatus(a.OverallStatus).icon + " " + presentStatus(a.OverallStatus).label,
		})
	}
	return rows
}

func angleCell(deg float64, s sightline.Status) string {
	return fmt.Sprintf("%.1f° %s", deg, presentStatus(s).icon)
}

func clearanceCell(a sightline.RowAnalysis) string {
	switch {
	case a.SightlineClearance == nil:
		return "—"
	case a.SightlineBlocked:
		return fmt.Sprintf("%.1f\" blocked", *a.SightlineClearance)
	default:
		return fmt.Sprintf("%.1f\"", *a.SightlineClearance)
	}
}

// reportTable renders the analysis table. The row whose id equals selected
// is shown in bold; pass 0 for no selection.
func reportTable(report *sightline.Report, selected int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(reportHeaders...).
		Rows(reportRows(report)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == headerRow {
				return base.Inherit(styleHeader)
			}
			if row < 0 || row >= len(report.Rows) {
				return base
			}
			a := report.Rows[row]
			if a.RowID == selected {
				base = base.Bold(true)
			}
			switch col {
			case colVVA:
				return base.Foreground(presentStatus(a.VerticalStatus).style.GetForeground())
			case colHVA:
				return base.Foreground(presentStatus(a.HorizontalStatus).style.GetForeground())
			case colClearance:
				if a.SightlineBlocked {
					return base.Foreground(colorRed)
				}
				return base.Foreground(colorGray)
			case colStatus:
				return base.Foreground(presentStatus(a.OverallStatus).style.GetForeground())
			case colRow:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}

// notesBlock lists the notes of every row that has any.
func notesBlock(report *sightline.Report) string {
	var b strings.Builder
	for _, a := range report.Rows {
		for _, note := range a.Notes {
			fmt.Fprintf(&b, "%s %s\n", StyleHighlight.Render(fmt.Sprintf("row %d", a.RowID)), StyleDim.Render(note))
		}
	}
	return b.String()
}
