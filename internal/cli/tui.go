package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sightline/pkg/errors"
	pkgio "github.com/matzehuels/sightline/pkg/io"
	"github.com/matzehuels/sightline/pkg/seating"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// Editor styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	fieldActiveStyle  = lipgloss.NewStyle().Reverse(true)
)

// fieldSteps is the amount +/- changes each field by.
var fieldSteps = map[seating.Field]float64{
	seating.FieldDistance: 0.5,
	seating.FieldEar:      1,
	seating.FieldRiser:    1,
}

var fieldUnits = map[seating.Field]string{
	seating.FieldDistance: "ft",
	seating.FieldEar:      "in",
	seating.FieldRiser:    "in",
}

// analyzeFunc evaluates a row list against the editor's screen.
type analyzeFunc func([]sightline.SeatingRow) (*sightline.Report, error)

// savedMsg reports the outcome of writing the rows to disk.
type savedMsg struct {
	path string
	err  error
}

// =============================================================================
// EditorModel - Interactive row editor
// =============================================================================

// EditorModel is the bubbletea model for the row editor. Every edit re-runs
// the analysis; an edit that fails validation keeps the last valid report on
// screen together with the error.
type EditorModel struct {
	Rows     []sightline.SeatingRow
	Report   *sightline.Report // last valid analysis
	Err      error             // error from the most recent edit, if any
	Standard string
	Output   string
	Cursor   int // index into Rows
	Field    int // index into seating.Fields
	Editing  bool
	Input    string
	Status   string
	Dirty    bool

	analyze analyzeFunc
}

// NewEditorModel creates an editor for rows. The initial rows are analyzed
// immediately; if they are invalid the editor starts without a report.
func NewEditorModel(rows []sightline.SeatingRow, standard, output string, analyze analyzeFunc) EditorModel {
	if len(rows) == 0 {
		rows = seating.Default()
	}
	m := EditorModel{Standard: standard, Output: output, analyze: analyze}
	m.apply(rows)
	m.Dirty = false
	return m
}

// apply installs rows and re-runs the analysis.
func (m *EditorModel) apply(rows []sightline.SeatingRow) {
	m.Rows = rows
	m.Dirty = true
	report, err := m.analyze(rows)
	if err != nil {
		m.Err = err
		return
	}
	m.Report = report
	m.Err = nil
}

func (m EditorModel) selectedField() seating.Field {
	return seating.Fields[m.Field]
}

func (m EditorModel) selectedRow() sightline.SeatingRow {
	return m.Rows[m.Cursor]
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.Status = StyleError.Render("save failed: " + errors.UserMessage(msg.err))
		} else {
			m.Dirty = false
			m.Status = StyleSuccess.Render("saved " + msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		if m.Editing {
			return m.updateInput(msg)
		}
		return m.updateNavigate(msg)
	}
	return m, nil
}

func (m EditorModel) updateNavigate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Status = ""
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case "left", "h", "shift+tab":
		m.Field = (m.Field + len(seating.Fields) - 1) % len(seating.Fields)
	case "right", "l", "tab":
		m.Field = (m.Field + 1) % len(seating.Fields)
	case "enter", "e":
		m.Editing = true
		m.Input = strconv.FormatFloat(seating.Get(m.selectedRow(), m.selectedField()), 'f', -1, 64)
	case "+", "=":
		m.step(1)
	case "-", "_":
		m.step(-1)
	case "a":
		m.apply(seating.Add(m.Rows))
		m.Cursor = len(m.Rows) - 1
	case "d", "x":
		rows, err := seating.Remove(m.Rows, m.selectedRow().ID)
		if err != nil {
			m.Status = StyleError.Render(errors.UserMessage(err))
			return m, nil
		}
		m.apply(rows)
		m.Cursor = min(m.Cursor, len(m.Rows)-1)
	case "w", "ctrl+s":
		return m, m.save()
	}
	return m, nil
}

func (m EditorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Editing = false
		v, err := strconv.ParseFloat(strings.TrimSpace(m.Input), 64)
		if err != nil {
			m.Status = StyleError.Render(fmt.Sprintf("%q is not a number", m.Input))
			return m, nil
		}
		m.set(v)
	case tea.KeyEsc:
		m.Editing = false
	case tea.KeyBackspace:
		if n := len(m.Input); n > 0 {
			m.Input = m.Input[:n-1]
		}
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				m.Input += string(r)
			}
		}
	}
	return m, nil
}

// set writes v into the selected field and re-runs the analysis.
func (m *EditorModel) set(v float64) {
	rows, err := seating.Update(m.Rows, m.selectedRow().ID, m.selectedField(), v)
	if err != nil {
		m.Err = err
		return
	}
	m.apply(rows)
}

func (m *EditorModel) step(dir float64) {
	f := m.selectedField()
	m.set(seating.Get(m.selectedRow(), f) + dir*fieldSteps[f])
}

// save returns a command writing the rows to the output path. Rows that
// fail validation are not saved.
func (m EditorModel) save() tea.Cmd {
	if m.Err != nil {
		return func() tea.Msg {
			return savedMsg{path: m.Output, err: errors.New(errors.ErrCodeInvalidRow, "fix the invalid row before saving")}
		}
	}
	rows, path := m.Rows, m.Output
	return func() tea.Msg {
		return savedMsg{path: path, err: pkgio.ExportRows(rows, path)}
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sightline editor"))
	b.WriteString(" " + StyleDim.Render(m.Standard))
	if m.Dirty {
		b.WriteString(StyleDim.Render(" · modified"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ row  ←/→ field  ⏎ edit  +/- step  a add  d delete  w save  q quit"))
	b.WriteString("\n\n")

	for i, r := range m.Rows {
		b.WriteString(m.rowLine(i, r))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + StyleError.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
		if m.Report != nil {
			b.WriteString(StyleDim.Render("showing the last valid analysis"))
			b.WriteString("\n")
		}
	}

	if m.Report != nil {
		b.WriteString(reportTable(m.Report, m.selectedRow().ID))
		b.WriteString("\n")
		b.WriteString(notesBlock(m.Report))
		for _, adv := range m.Report.Advisories {
			b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(adv.String()) + "\n")
		}
	}

	if m.Status != "" {
		b.WriteString("\n" + m.Status + "\n")
	}
	return b.String()
}

func (m EditorModel) rowLine(i int, r sightline.SeatingRow) string {
	cursor, style := "  ", listNormalStyle
	if i == m.Cursor {
		cursor, style = "▸ ", listSelectedStyle
	}

	cells := make([]string, 0, len(seating.Fields))
	for j, f := range seating.Fields {
		value := fmt.Sprintf("%g", seating.Get(r, f))
		if i == m.Cursor && j == m.Field {
			if m.Editing {
				value = m.Input + "▏"
			}
			value = fieldActiveStyle.Render(value)
		}
		cells = append(cells, fmt.Sprintf("%s %s %s", listDimStyle.Render(string(f)), value, listDimStyle.Render(fieldUnits[f])))
	}
	return style.Render(fmt.Sprintf("%srow %-3d", cursor, r.ID)) + "  " + strings.Join(cells, "   ")
}
