package sightline

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/sightline/pkg/errors"
)

// Values beyond these limits are computed normally but usually mean a
// length was entered in the wrong unit.
const (
	maxPlausibleDistance   = 150.0 // feet
	maxPlausibleVertical   = 60.0  // degrees
	maxPlausibleHorizontal = 120.0 // degrees
	maxPlausibleClearance  = 120.0 // inches
)

// Analyze returns one analysis per row, nearest to the screen first.
//
// The rows may arrive in any order; rows at equal distance keep their input
// order. Analyze rejects the whole batch, returning no analyses, when any
// row or the screen configuration is invalid.
func Analyze(rows []SeatingRow, screen ScreenConfig) ([]RowAnalysis, error) {
	rep, err := Evaluate(rows, screen)
	if err != nil {
		return nil, err
	}
	return rep.Rows, nil
}

// Evaluate is like [Analyze] but also returns the advisories raised for the
// input and the reference height that was used.
func Evaluate(rows []SeatingRow, screen ScreenConfig) (*Report, error) {
	screen = screen.Normalize()
	if err := screen.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateRows(rows, screen.Thresholds); err != nil {
		return nil, err
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b SeatingRow) int {
		return cmp.Compare(a.DistFromScreen, b.DistFromScreen)
	})

	ref := screen.ReferenceHeight()
	rep := &Report{
		ReferenceHeight: ref,
		Rows:            make([]RowAnalysis, 0, len(sorted)),
	}

	// front is the tallest row of the nearest distance group strictly closer
	// to the screen than the current row; group is the tallest row seen so
	// far at the current distance.
	var front, group *SeatingRow
	for i := range sorted {
		row := sorted[i]
		if i > 0 {
			prev := sorted[i-1]
			if row.DistFromScreen == prev.DistFromScreen {
				rep.Advisories = append(rep.Advisories, Advisory{
					Kind:    AdvisoryAmbiguousOrdering,
					RowID:   row.ID,
					Message: fmt.Sprintf("shares distance %g ft with row %d; input order kept", row.DistFromScreen, prev.ID),
				})
			} else {
				front, group = group, nil
			}
			if row.RiserHeight < prev.RiserHeight {
				rep.Advisories = append(rep.Advisories, Advisory{
					Kind:    AdvisoryNonMonotonicRiser,
					RowID:   row.ID,
					Message: fmt.Sprintf("riser %g\" is lower than row %d in front (%g\")", row.RiserHeight, prev.ID, prev.RiserHeight),
				})
			}
		}

		a := analyzeRow(row, front, ref, screen)
		rep.Rows = append(rep.Rows, a)
		rep.Advisories = append(rep.Advisories, plausibility(row, a)...)

		if group == nil || row.EyeHeight() > group.EyeHeight() {
			group = &sorted[i]
		}
	}
	return rep, nil
}

func analyzeRow(row SeatingRow, front *SeatingRow, ref float64, screen ScreenConfig) RowAnalysis {
	th := screen.Thresholds
	dist := row.DistanceInches()
	vva := VerticalAngle(ref, row.EyeHeight(), dist)
	hva := HorizontalAngle(screen.Width, screen.HorizontalOffset, dist)

	a := RowAnalysis{
		RowID:                  row.ID,
		DistFromScreen:         row.DistFromScreen,
		EyeHeight:              row.EyeHeight(),
		VerticalViewingAngle:   vva,
		HorizontalViewingAngle: hva,
		VVAPass:                th.Vertical.Pass(vva),
		HVAPass:                th.Horizontal.Pass(hva),
		VerticalStatus:         th.Vertical.Classify(vva),
		HorizontalStatus:       th.Horizontal.Classify(hva),
	}

	notes := make([]string, 0, 3)
	sight := StatusOptimal
	if front != nil {
		c := Clearance(row, *front, ref, th.HeadAllowance)
		id := front.ID
		a.SightlineClearance = &c
		a.ObstructedBy = &id
		if c < th.MinClearance {
			a.SightlineBlocked = true
			sight = StatusFail
			notes = append(notes, sightlineNote(front.ID, c, th.MinClearance))
		}
	}
	if n := verticalNote(vva, th.Vertical); n != "" {
		notes = append(notes, n)
	}
	if n := horizontalNote(hva, th.Horizontal); n != "" {
		notes = append(notes, n)
	}

	a.OverallStatus = Worst(a.VerticalStatus, a.HorizontalStatus, sight)
	a.Notes = notes
	return a
}

func plausibility(row SeatingRow, a RowAnalysis) []Advisory {
	var out []Advisory
	add := func(format string, args ...any) {
		out = append(out, Advisory{Kind: AdvisoryOutOfRange, RowID: row.ID, Message: fmt.Sprintf(format, args...)})
	}
	if row.DistFromScreen > maxPlausibleDistance {
		add("distance %.1f ft is implausibly far; distances are in feet", row.DistFromScreen)
	}
	if math.Abs(a.VerticalViewingAngle) > maxPlausibleVertical {
		add("vertical angle %.1f° is implausibly steep; heights are in inches", a.VerticalViewingAngle)
	}
	if a.HorizontalViewingAngle > maxPlausibleHorizontal {
		add("horizontal angle %.1f° is implausibly wide; screen width is in inches", a.HorizontalViewingAngle)
	}
	if a.SightlineClearance != nil && math.Abs(*a.SightlineClearance) > maxPlausibleClearance {
		add("sightline clearance %.1f\" is implausibly large; check riser heights", *a.SightlineClearance)
	}
	return out
}

// ValidateRows checks every row against the physical bounds in th and
// rejects duplicate ids. It returns the first problem found as an
// INVALID_ROW error.
func ValidateRows(rows []SeatingRow, th Thresholds) error {
	code := errors.ErrCodeInvalidRow
	seen := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.ID]; dup {
			return errors.New(code, "duplicate row id %d", r.ID)
		}
		seen[r.ID] = struct{}{}

		if err := errors.ValidatePositive(code, "distance from screen", r.DistFromScreen); err != nil {
			return rowError(r.ID, err)
		}
		if err := errors.ValidateRange(code, "ear height", r.EarHeight, th.EarHeight.Min, th.EarHeight.Max); err != nil {
			return rowError(r.ID, err)
		}
		if err := errors.ValidateRange(code, "riser height", r.RiserHeight, 0, th.MaxRiser); err != nil {
			return rowError(r.ID, err)
		}
	}
	return nil
}

func rowError(id int, err error) error {
	return errors.New(errors.ErrCodeInvalidRow, "row %d: %s", id, errors.UserMessage(err))
}
