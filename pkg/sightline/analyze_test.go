package sightline

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/sightline/pkg/errors"
)

// defaultRows mirrors the editor's default progression: 4 ft apart, each
// riser 8 in higher than the one in front.
func defaultRows() []SeatingRow {
	return []SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: 0},
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
		{ID: 3, DistFromScreen: 18, EarHeight: 44, RiserHeight: 16},
		{ID: 4, DistFromScreen: 22, EarHeight: 44, RiserHeight: 24},
		{ID: 5, DistFromScreen: 26, EarHeight: 44, RiserHeight: 32},
	}
}

// highScreen has its center at 120 in.
func highScreen() ScreenConfig {
	s := DefaultScreen()
	s.Bottom, s.Top = 72, 168
	s.Thresholds.MinClearance = 4
	return s
}

func TestAnalyzeDefaultRoom(t *testing.T) {
	got, err := Analyze(defaultRows(), DefaultScreen())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []struct {
		status    Status
		blocked   bool
		clearance float64 // NaN when not applicable
	}{
		{StatusAcceptable, false, math.NaN()},
		{StatusOptimal, false, 5.642857142857146},
		{StatusOptimal, false, 3.5},
		{StatusMarginal, false, 2.1363636363636402},
		{StatusFail, true, 1.1923076923076934},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d analyses, want %d", len(got), len(want))
	}
	for i, w := range want {
		a := got[i]
		if a.OverallStatus != w.status {
			t.Errorf("row %d: status = %v, want %v (notes %q)", a.RowID, a.OverallStatus, w.status, a.Notes)
		}
		if a.SightlineBlocked != w.blocked {
			t.Errorf("row %d: blocked = %v, want %v", a.RowID, a.SightlineBlocked, w.blocked)
		}
		if math.IsNaN(w.clearance) {
			if a.SightlineClearance != nil {
				t.Errorf("row %d: clearance = %v, want nil", a.RowID, *a.SightlineClearance)
			}
			continue
		}
		if a.SightlineClearance == nil || !approx(*a.SightlineClearance, w.clearance, 1e-9) {
			t.Errorf("row %d: clearance = %v, want %v", a.RowID, a.SightlineClearance, w.clearance)
		}
		if a.ObstructedBy == nil || *a.ObstructedBy != a.RowID-1 {
			t.Errorf("row %d: obstructed by %v, want %d", a.RowID, a.ObstructedBy, a.RowID-1)
		}
	}

	wantNotes := map[int][]string{
		1: {"horizontal angle 53.1° exceeds optimal maximum of 50° (seat too close)"},
		2: {},
		3: {},
		4: {"horizontal angle 25.6° is below acceptable minimum of 26° (seat too far)"},
		5: {
			`sightline blocked by row 4 in front, clearance 1.2" (minimum 2")`,
			"horizontal angle 21.8° is below marginal minimum of 22° (seat too far)",
		},
	}
	for _, a := range got {
		if !reflect.DeepEqual(a.Notes, wantNotes[a.RowID]) {
			t.Errorf("row %d notes = %q, want %q", a.RowID, a.Notes, wantNotes[a.RowID])
		}
	}
}

func TestAnalyzeTwoRowScenario(t *testing.T) {
	rows := []SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: 0},
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
	}

	got, err := Analyze(rows, highScreen())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if got[0].SightlineClearance != nil || got[0].SightlineBlocked {
		t.Errorf("row A should have no obstruction, got %+v", got[0])
	}

	b := got[1]
	if b.SightlineClearance == nil {
		t.Fatal("row B should have a clearance")
	}
	want := 52 + 68.0*48/168 - 48
	if !approx(*b.SightlineClearance, want, 1e-9) {
		t.Errorf("row B clearance = %v, want %v", *b.SightlineClearance, want)
	}
	if b.SightlineBlocked {
		t.Error("row B clears row A by more than 4 in")
	}
}

func TestAnalyzeBlockedSightline(t *testing.T) {
	rows := []SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44},
		{ID: 2, DistFromScreen: 14, EarHeight: 44},
	}
	screen := DefaultScreen()
	screen.Reference = ReferenceDesignEye
	screen.DesignEyeHeight = 50

	got, err := Analyze(rows, screen)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	b := got[1]
	if !b.SightlineBlocked {
		t.Fatal("row B should be blocked")
	}
	if b.OverallStatus != StatusFail {
		t.Errorf("blocked row status = %v, want fail", b.OverallStatus)
	}
	if len(b.Notes) == 0 || !strings.HasPrefix(b.Notes[0], "sightline blocked by row 1") {
		t.Fatalf("first note should cite the sightline, got %q", b.Notes)
	}
	if !strings.Contains(b.Notes[0], `clearance -2.3"`) {
		t.Errorf("note should cite the negative clearance, got %q", b.Notes[0])
	}
}

func TestAnalyzeSteepFrontRow(t *testing.T) {
	rows := []SeatingRow{{ID: 1, DistFromScreen: 5, EarHeight: 44}}
	screen := highScreen()

	got, err := Analyze(rows, screen)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	a := got[0]
	if a.VVAPass {
		t.Errorf("VVA %.1f should fail", a.VerticalViewingAngle)
	}
	if !approx(a.VerticalViewingAngle, 51.70983680775693, 1e-9) {
		t.Errorf("VVA = %v", a.VerticalViewingAngle)
	}
	if a.OverallStatus != StatusFail {
		t.Errorf("status = %v, want fail", a.OverallStatus)
	}
	want := "vertical angle 51.7° (looking up) exceeds warning maximum of 35°"
	if len(a.Notes) < 1 || a.Notes[0] != want {
		t.Errorf("notes = %q, want first %q", a.Notes, want)
	}
}

func TestAnalyzeNoteOrder(t *testing.T) {
	// Close to the screen and looking far down at a low reference point:
	// every criterion fails.
	rows := []SeatingRow{
		{ID: 1, DistFromScreen: 4, EarHeight: 44},
		{ID: 2, DistFromScreen: 5, EarHeight: 44},
	}
	screen := DefaultScreen()
	screen.Reference = ReferenceDesignEye
	screen.DesignEyeHeight = 10

	got, err := Analyze(rows, screen)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	notes := got[1].Notes
	if len(notes) != 3 {
		t.Fatalf("want 3 notes, got %q", notes)
	}
	prefixes := []string{"sightline", "vertical", "horizontal"}
	for i, p := range prefixes {
		if !strings.HasPrefix(notes[i], p) {
			t.Errorf("note %d = %q, want prefix %q", i, notes[i], p)
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a, err := Analyze(defaultRows(), DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Analyze(defaultRows(), DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different output")
	}
}

func TestAnalyzeInputOrderInvariance(t *testing.T) {
	want, err := Analyze(defaultRows(), DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}

	rows := defaultRows()
	perms := [][]int{
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 2, 3, 4, 0},
	}
	for _, p := range perms {
		shuffled := make([]SeatingRow, len(p))
		for i, j := range p {
			shuffled[i] = rows[j]
		}
		got, err := Analyze(shuffled, DefaultScreen())
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("permutation %v changed the result", p)
		}
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	rows := []SeatingRow{
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
		{ID: 1, DistFromScreen: 10, EarHeight: 44},
	}
	before := append([]SeatingRow(nil), rows...)
	if _, err := Analyze(rows, DefaultScreen()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rows, before) {
		t.Error("Analyze reordered the caller's slice")
	}
}

func TestAnalyzeMonotonicity(t *testing.T) {
	screen := DefaultScreen()
	var prevH, prevV float64
	for i, d := range []float64{6, 8, 10, 14, 20, 30, 45} {
		got, err := Analyze([]SeatingRow{{ID: 1, DistFromScreen: d, EarHeight: 40}}, screen)
		if err != nil {
			t.Fatal(err)
		}
		h := got[0].HorizontalViewingAngle
		v := math.Abs(got[0].VerticalViewingAngle)
		if i > 0 {
			if h >= prevH {
				t.Errorf("HVA at %v ft = %v, not below %v", d, h, prevH)
			}
			if v >= prevV {
				t.Errorf("|VVA| at %v ft = %v, not below %v", d, v, prevV)
			}
		}
		prevH, prevV = h, v
	}
}

func TestAnalyzeFirstRowNeverObstructed(t *testing.T) {
	// A very tall front riser still has nothing in front of it.
	rows := []SeatingRow{
		{ID: 7, DistFromScreen: 12, EarHeight: 60, RiserHeight: 200},
		{ID: 8, DistFromScreen: 16, EarHeight: 44},
	}
	got, err := Analyze(rows, DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}
	if got[0].SightlineClearance != nil || got[0].SightlineBlocked || got[0].ObstructedBy != nil {
		t.Errorf("nearest row should never be obstructed: %+v", got[0])
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	screens := map[string]ScreenConfig{
		"default": DefaultScreen(),
		"high":    highScreen(),
		"offset": func() ScreenConfig {
			s := DefaultScreen()
			s.HorizontalOffset = 40
			return s
		}(),
	}
	rowSets := map[string][]SeatingRow{
		"default": defaultRows(),
		"flat": {
			{ID: 1, DistFromScreen: 8, EarHeight: 44},
			{ID: 2, DistFromScreen: 11, EarHeight: 44},
			{ID: 3, DistFromScreen: 14, EarHeight: 44},
		},
		"single": {{ID: 1, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8}},
	}

	for sn, screen := range screens {
		for rn, rows := range rowSets {
			got, err := Analyze(rows, screen)
			if err != nil {
				t.Fatalf("%s/%s: %v", sn, rn, err)
			}
			if len(got) != len(rows) {
				t.Errorf("%s/%s: %d results for %d rows", sn, rn, len(got), len(rows))
			}
			for i, a := range got {
				if i > 0 && a.DistFromScreen < got[i-1].DistFromScreen {
					t.Errorf("%s/%s: output not sorted by distance", sn, rn)
				}
				if a.SightlineBlocked && a.OverallStatus != StatusFail {
					t.Errorf("%s/%s row %d: blocked but %v", sn, rn, a.RowID, a.OverallStatus)
				}
				if (len(a.Notes) == 0) != (a.OverallStatus == StatusOptimal) {
					t.Errorf("%s/%s row %d: status %v with notes %q", sn, rn, a.RowID, a.OverallStatus, a.Notes)
				}
				if a.Notes == nil {
					t.Errorf("%s/%s row %d: notes should be an empty slice, not nil", sn, rn, a.RowID)
				}
			}
		}
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	got, err := Analyze(nil, DefaultScreen())
	if err != nil {
		t.Fatalf("Analyze(nil): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Analyze(nil) = %#v, want empty slice", got)
	}
}

func TestEvaluateEqualDistances(t *testing.T) {
	rows := []SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44},
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 8},
		{ID: 3, DistFromScreen: 14, EarHeight: 50, RiserHeight: 8},
		{ID: 4, DistFromScreen: 18, EarHeight: 44, RiserHeight: 16},
	}

	rep, err := Evaluate(rows, DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}

	ids := make([]int, len(rep.Rows))
	for i, a := range rep.Rows {
		ids[i] = a.RowID
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 3, 4}) {
		t.Errorf("order = %v, want input order kept for equal distances", ids)
	}

	// Rows at the same distance are not in front of each other.
	if r3, _ := rep.Row(3); r3.ObstructedBy == nil || *r3.ObstructedBy != 1 {
		t.Errorf("row 3 should be checked against row 1, got %v", r3.ObstructedBy)
	}
	// The taller of the two rows at 14 ft is the obstruction for row 4.
	if r4, _ := rep.Row(4); r4.ObstructedBy == nil || *r4.ObstructedBy != 3 {
		t.Errorf("row 4 should be checked against row 3, got %v", r4.ObstructedBy)
	}

	var ambiguous int
	for _, adv := range rep.Advisories {
		if adv.Kind == AdvisoryAmbiguousOrdering {
			ambiguous++
			if adv.RowID != 3 {
				t.Errorf("ambiguous ordering reported for row %d, want 3", adv.RowID)
			}
		}
	}
	if ambiguous != 1 {
		t.Errorf("got %d ambiguous-ordering advisories, want 1", ambiguous)
	}
}

func TestEvaluateAdvisories(t *testing.T) {
	rows := []SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: 12},
		{ID: 2, DistFromScreen: 14, EarHeight: 44, RiserHeight: 6},
		{ID: 3, DistFromScreen: 180, EarHeight: 44, RiserHeight: 6},
	}

	rep, err := Evaluate(rows, DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}

	kinds := map[AdvisoryKind][]int{}
	for _, adv := range rep.Advisories {
		kinds[adv.Kind] = append(kinds[adv.Kind], adv.RowID)
	}
	if !reflect.DeepEqual(kinds[AdvisoryNonMonotonicRiser], []int{2}) {
		t.Errorf("non-monotonic riser advisories = %v, want [2]", kinds[AdvisoryNonMonotonicRiser])
	}
	if !reflect.DeepEqual(kinds[AdvisoryOutOfRange], []int{3}) {
		t.Errorf("out-of-range advisories = %v, want [3]", kinds[AdvisoryOutOfRange])
	}

	// Advisories never leak into row notes.
	if r, _ := rep.Row(2); r.OverallStatus == StatusOptimal && len(r.Notes) != 0 {
		t.Errorf("optimal row carries notes %q", r.Notes)
	}
}

func TestAnalyzeRejectsInvalidRows(t *testing.T) {
	base := SeatingRow{ID: 1, DistFromScreen: 10, EarHeight: 44}
	tests := []struct {
		name string
		rows []SeatingRow
	}{
		{"zero distance", []SeatingRow{{ID: 1, DistFromScreen: 0, EarHeight: 44}}},
		{"negative distance", []SeatingRow{base, {ID: 2, DistFromScreen: -3, EarHeight: 44}}},
		{"NaN distance", []SeatingRow{{ID: 1, DistFromScreen: math.NaN(), EarHeight: 44}}},
		{"ear too low", []SeatingRow{{ID: 1, DistFromScreen: 10, EarHeight: 20}}},
		{"ear too high", []SeatingRow{{ID: 1, DistFromScreen: 10, EarHeight: 72}}},
		{"negative riser", []SeatingRow{{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: -1}}},
		{"riser too tall", []SeatingRow{{ID: 1, DistFromScreen: 10, EarHeight: 44, RiserHeight: 500}}},
		{"duplicate id", []SeatingRow{base, {ID: 1, DistFromScreen: 14, EarHeight: 44}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Analyze(tt.rows, DefaultScreen())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidRow) {
				t.Errorf("error code = %v, want INVALID_ROW", errors.GetCode(err))
			}
			if got != nil {
				t.Errorf("rejected batch should produce no analyses, got %d", len(got))
			}
		})
	}
}

func TestAnalyzeRejectsInvalidScreen(t *testing.T) {
	rows := defaultRows()
	tests := []struct {
		name   string
		mutate func(*ScreenConfig)
	}{
		{"zero width", func(s *ScreenConfig) { s.Width = 0 }},
		{"top below bottom", func(s *ScreenConfig) { s.Top = 10 }},
		{"unknown reference", func(s *ScreenConfig) { s.Reference = "middle" }},
		{"design eye missing", func(s *ScreenConfig) { s.Reference = ReferenceDesignEye }},
		{"negative head allowance", func(s *ScreenConfig) { s.Thresholds.HeadAllowance = -1 }},
		{"bands not nested", func(s *ScreenConfig) { s.Thresholds.Horizontal.Optimal.Max = 90 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := DefaultScreen()
			tt.mutate(&screen)
			_, err := Analyze(rows, screen)
			if !errors.Is(err, errors.ErrCodeInvalidScreen) {
				t.Errorf("got %v, want INVALID_SCREEN", err)
			}
		})
	}
}

func TestScreenNormalize(t *testing.T) {
	s := ScreenConfig{Height: 60, Center: 70, Width: 100}.Normalize()
	if s.Bottom != 40 || s.Top != 100 {
		t.Errorf("Normalize() bottom/top = %v/%v, want 40/100", s.Bottom, s.Top)
	}
	if s.Reference != ReferenceCenter {
		t.Errorf("reference = %q, want center", s.Reference)
	}

	s = ScreenConfig{Bottom: 30, Height: 50, Width: 100}.Normalize()
	if s.Top != 80 {
		t.Errorf("Normalize() top = %v, want 80", s.Top)
	}

	refs := map[Reference]float64{
		ReferenceCenter: 55,
		ReferenceTop:    80,
		ReferenceBottom: 30,
	}
	for ref, want := range refs {
		s.Reference = ref
		if got := s.ReferenceHeight(); got != want {
			t.Errorf("ReferenceHeight(%s) = %v, want %v", ref, got, want)
		}
	}
}

func TestReportSummary(t *testing.T) {
	rep, err := Evaluate(defaultRows(), DefaultScreen())
	if err != nil {
		t.Fatal(err)
	}
	if rep.Worst() != StatusFail {
		t.Errorf("Worst() = %v, want fail", rep.Worst())
	}
	counts := rep.Counts()
	if counts[StatusOptimal] != 2 || counts[StatusFail] != 1 {
		t.Errorf("Counts() = %v", counts)
	}
	if _, ok := rep.Row(42); ok {
		t.Error("Row(42) should not exist")
	}
}
