package render

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/sightline/pkg/sightline"
)

func testRoom(t *testing.T) (*sightline.Report, []sightline.SeatingRow, sightline.ScreenConfig) {
	t.Helper()
	rows := []sightline.SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44},
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
		{ID: 3, DistFromScreen: 18, EarHeight: 44, RiserHeight: 16},
		{ID: 4, DistFromScreen: 22, EarHeight: 44, RiserHeight: 24},
		{ID: 5, DistFromScreen: 26, EarHeight: 44, RiserHeight: 32},
	}
	screen := sightline.DefaultScreen()
	report, err := sightline.Evaluate(rows, screen)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return report, rows, screen
}

func TestJSON(t *testing.T) {
	report, _, _ := testRoom(t)
	data, err := JSON(report)
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("JSON output should end with a newline")
	}

	var decoded struct {
		Rows []struct {
			RowID              int      `json:"rowId"`
			OverallStatus      string   `json:"overallStatus"`
			SightlineClearance *float64 `json:"sightlineClearance"`
			Notes              []string `json:"notes"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(decoded.Rows))
	}
	if decoded.Rows[0].OverallStatus != "acceptable" || decoded.Rows[4].OverallStatus != "fail" {
		t.Errorf("statuses should encode as names, got %q and %q",
			decoded.Rows[0].OverallStatus, decoded.Rows[4].OverallStatus)
	}
	if decoded.Rows[0].SightlineClearance != nil {
		t.Error("front row clearance should encode as null")
	}
	if decoded.Rows[1].Notes == nil {
		t.Error("optimal row notes should encode as an empty array")
	}
	if !strings.Contains(string(data), `"notes": []`) {
		t.Error("expected an empty notes array in the output")
	}
}

func TestSVGWellFormed(t *testing.T) {
	report, rows, screen := testRoom(t)
	svg := SVG(report, rows, screen, WithTitle(`Room <A> & "B"`), WithGrid(), WithTheme(ThemeDark))

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestSVGContent(t *testing.T) {
	report, rows, screen := testRoom(t)
	svg := string(SVG(report, rows, screen))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should be a single svg element")
	}
	if got := strings.Count(svg, `class="row"`); got != 5 {
		t.Errorf("got %d row groups, want 5", got)
	}
	// Row 1 sits on the floor and gets no riser block.
	if got := strings.Count(svg, `class="riser"`); got != 4 {
		t.Errorf("got %d risers, want 4", got)
	}
	if got := strings.Count(svg, `stroke-dasharray="6 4"`); got != 1 {
		t.Errorf("got %d dashed sightlines, want 1 (row 5 is blocked)", got)
	}
	if !strings.Contains(svg, `id="row-5" data-status="fail"`) {
		t.Error("row 5 should be marked as failing")
	}
	if !strings.Contains(svg, StatusColor(sightline.StatusFail)) {
		t.Error("fail colour missing")
	}
	if strings.Contains(svg, `class="grid"`) {
		t.Error("grid drawn without WithGrid")
	}
}

func TestSVGOptions(t *testing.T) {
	report, rows, screen := testRoom(t)

	wide := string(SVG(report, rows, screen, WithWidth(1600)))
	if !strings.Contains(wide, `width="1600"`) {
		t.Error("WithWidth not applied")
	}
	ignored := string(SVG(report, rows, screen, WithWidth(-5), WithTheme("neon")))
	if !strings.Contains(ignored, `width="960"`) {
		t.Error("invalid width should fall back to the default")
	}
	if !strings.Contains(ignored, palettes[ThemeLight].background) {
		t.Error("unknown theme should fall back to light")
	}
}

func TestSVGEmptyReport(t *testing.T) {
	svg := string(SVG(&sightline.Report{ReferenceHeight: 57.75}, nil, sightline.DefaultScreen()))
	if !strings.Contains(svg, `class="screen"`) {
		t.Error("empty room should still draw the screen")
	}
	if strings.Contains(svg, `class="row"`) {
		t.Error("empty room should have no rows")
	}
}

func TestStatusColorDistinct(t *testing.T) {
	seen := map[string]sightline.Status{}
	for _, s := range sightline.Statuses {
		c := StatusColor(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("%v and %v share colour %s", prev, s, c)
		}
		seen[c] = s
	}
}

func TestValidateTheme(t *testing.T) {
	if err := ValidateTheme(ThemeDark); err != nil {
		t.Errorf("ValidateTheme(dark): %v", err)
	}
	if err := ValidateTheme("sepia"); err == nil {
		t.Error("ValidateTheme(sepia) should fail")
	}
}
