package sightline

import (
	"fmt"
	"slices"

	"github.com/matzehuels/sightline/pkg/errors"
)

const inchesPerFoot = 12.0

// SeatingRow is one physical row of seats as entered by the designer.
type SeatingRow struct {
	ID             int     `json:"id"`
	DistFromScreen float64 `json:"distFromScreen"` // feet
	EarHeight      float64 `json:"earHeight"`      // inches above the riser surface
	RiserHeight    float64 `json:"riserHeight"`    // inches above the floor datum
}

// EyeHeight returns the seated eye height above the floor datum in inches.
func (r SeatingRow) EyeHeight() float64 {
	return r.RiserHeight + r.EarHeight
}

// DistanceInches returns the distance from the screen plane in inches.
func (r SeatingRow) DistanceInches() float64 {
	return r.DistFromScreen * inchesPerFoot
}

// Reference selects the vertical point on the screen used for the viewing
// angle and the sightline.
type Reference string

// Supported reference points.
const (
	ReferenceCenter    Reference = "center"
	ReferenceTop       Reference = "top"
	ReferenceBottom    Reference = "bottom"
	ReferenceDesignEye Reference = "design-eye"
)

// References lists the supported reference points.
var References = []Reference{ReferenceCenter, ReferenceTop, ReferenceBottom, ReferenceDesignEye}

// ScreenConfig describes the screen and the thresholds used to judge rows.
// All lengths are inches above the floor datum (heights) or inches across
// (width and offset).
//
// The vertical extent is given either as Bottom and Top or as Height and
// Center; [ScreenConfig.Normalize] converts the latter into the former.
type ScreenConfig struct {
	Bottom           float64    `json:"bottom"`
	Top              float64    `json:"top"`
	Height           float64    `json:"height,omitempty"`
	Center           float64    `json:"center,omitempty"`
	Width            float64    `json:"width"`
	HorizontalOffset float64    `json:"horizontalOffset"`
	Reference        Reference  `json:"reference,omitempty"`
	DesignEyeHeight  float64    `json:"designEyeHeight,omitempty"`
	Thresholds       Thresholds `json:"thresholds"`
}

// Thresholds holds the venue standard a room is judged against.
type Thresholds struct {
	Vertical      Band    `json:"vertical"`      // degrees, signed
	Horizontal    Band    `json:"horizontal"`    // degrees
	HeadAllowance float64 `json:"headAllowance"` // inches from eye to top of head
	MinClearance  float64 `json:"minClearance"`  // inches required above the head allowance
	EarHeight     Range   `json:"earHeight"`     // accepted seated ear heights, inches
	MaxRiser      float64 `json:"maxRiser"`      // tallest accepted riser, inches
}

// DefaultThresholds returns the reference standard.
//
// Vertical angles are measured to the screen reference point; the band is
// asymmetric because looking up is tolerated further than looking down.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Vertical: Band{
			Optimal:    Range{Min: -5, Max: 15},
			Acceptable: Range{Min: -8, Max: 20},
			Marginal:   Range{Min: -10, Max: 28},
			Warning:    Range{Min: -15, Max: 35},
		},
		Horizontal: Band{
			Optimal:    Range{Min: 30, Max: 50},
			Acceptable: Range{Min: 26, Max: 55},
			Marginal:   Range{Min: 22, Max: 60},
			Warning:    Range{Min: 18, Max: 70},
		},
		HeadAllowance: 4,
		MinClearance:  2,
		EarHeight:     Range{Min: 30, Max: 60},
		MaxRiser:      240,
	}
}

// DefaultScreen returns a 120 in wide 16:9 screen with its bottom edge
// 24 in above the floor, judged against [DefaultThresholds].
func DefaultScreen() ScreenConfig {
	return ScreenConfig{
		Bottom:     24,
		Top:        91.5,
		Width:      120,
		Reference:  ReferenceCenter,
		Thresholds: DefaultThresholds(),
	}
}

// Normalize returns a copy with Bottom and Top filled in from Height and
// Center when Top is unset, and the reference defaulted to center.
func (s ScreenConfig) Normalize() ScreenConfig {
	if s.Top == 0 && s.Height > 0 {
		if s.Center > 0 {
			s.Bottom = s.Center - s.Height/2
		}
		s.Top = s.Bottom + s.Height
	}
	if s.Reference == "" {
		s.Reference = ReferenceCenter
	}
	return s
}

// ReferenceHeight returns the height of the configured reference point.
func (s ScreenConfig) ReferenceHeight() float64 {
	switch s.Reference {
	case ReferenceTop:
		return s.Top
	case ReferenceBottom:
		return s.Bottom
	case ReferenceDesignEye:
		return s.DesignEyeHeight
	default:
		return (s.Bottom + s.Top) / 2
	}
}

// Validate checks the screen geometry and thresholds. It expects a
// normalized config.
func (s ScreenConfig) Validate() error {
	code := errors.ErrCodeInvalidScreen
	if err := errors.ValidatePositive(code, "screen width", s.Width); err != nil {
		return err
	}
	if err := errors.ValidateFinite(code, "screen bottom", s.Bottom); err != nil {
		return err
	}
	if err := errors.ValidateFinite(code, "screen top", s.Top); err != nil {
		return err
	}
	if s.Bottom < 0 {
		return errors.New(code, "screen bottom must not be below the floor (got %g)", s.Bottom)
	}
	if s.Top <= s.Bottom {
		return errors.New(code, "screen top %g must be above screen bottom %g", s.Top, s.Bottom)
	}
	if err := errors.ValidateFinite(code, "horizontal offset", s.HorizontalOffset); err != nil {
		return err
	}
	if !slices.Contains(References, s.Reference) {
		return errors.New(code, "unknown reference point %q", s.Reference)
	}
	if s.Reference == ReferenceDesignEye {
		if err := errors.ValidatePositive(code, "design eye height", s.DesignEyeHeight); err != nil {
			return err
		}
	}
	return s.Thresholds.Validate()
}

// Validate checks that bands are nested and the sightline and row bounds
// are usable.
func (t Thresholds) Validate() error {
	code := errors.ErrCodeInvalidScreen
	if err := t.Vertical.Validate("vertical"); err != nil {
		return err
	}
	if err := t.Horizontal.Validate("horizontal"); err != nil {
		return err
	}
	if err := errors.ValidateFinite(code, "head allowance", t.HeadAllowance); err != nil {
		return err
	}
	if t.HeadAllowance < 0 {
		return errors.New(code, "head allowance must not be negative (got %g)", t.HeadAllowance)
	}
	if err := errors.ValidateFinite(code, "minimum clearance", t.MinClearance); err != nil {
		return err
	}
	if err := t.EarHeight.validate("ear height bounds"); err != nil {
		return err
	}
	if t.EarHeight.Min <= 0 {
		return errors.New(code, "ear height bounds must be positive")
	}
	if err := errors.ValidateFinite(code, "max riser", t.MaxRiser); err != nil {
		return err
	}
	if t.MaxRiser < 0 {
		return errors.New(code, "max riser must not be negative (got %g)", t.MaxRiser)
	}
	return nil
}

// RowAnalysis is the computed result for one row.
type RowAnalysis struct {
	RowID                  int      `json:"rowId"`
	DistFromScreen         float64  `json:"distFromScreen"`
	EyeHeight              float64  `json:"eyeHeight"`
	VerticalViewingAngle   float64  `json:"verticalViewingAngle"`
	HorizontalViewingAngle float64  `json:"horizontalViewingAngle"`
	VVAPass                bool     `json:"vvaPass"`
	HVAPass                bool     `json:"hvaPass"`
	VerticalStatus         Status   `json:"verticalStatus"`
	HorizontalStatus       Status   `json:"horizontalStatus"`
	SightlineClearance     *float64 `json:"sightlineClearance"`
	SightlineBlocked       bool     `json:"sightlineBlocked"`
	ObstructedBy           *int     `json:"obstructedBy,omitempty"`
	OverallStatus          Status   `json:"overallStatus"`
	Notes                  []string `json:"notes"`
}

// AdvisoryKind classifies a non-fatal finding about the input.
type AdvisoryKind string

// Advisory kinds.
const (
	AdvisoryAmbiguousOrdering AdvisoryKind = "ambiguous_ordering"
	AdvisoryNonMonotonicRiser AdvisoryKind = "non_monotonic_riser"
	AdvisoryOutOfRange        AdvisoryKind = "configuration_out_of_range"
)

// Advisory is a warning attached to the result set rather than to a row's
// notes, so that a row's notes stay empty exactly when it is optimal.
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	RowID   int          `json:"rowId"`
	Message string       `json:"message"`
}

func (a Advisory) String() string {
	return fmt.Sprintf("%s: row %d: %s", a.Kind, a.RowID, a.Message)
}

// Report is the full output of [Evaluate].
type Report struct {
	ReferenceHeight float64       `json:"referenceHeight"`
	Rows            []RowAnalysis `json:"rows"`
	Advisories      []Advisory    `json:"advisories,omitempty"`
}

// Worst returns the most severe overall status in the report.
func (r *Report) Worst() Status {
	w := StatusOptimal
	for _, row := range r.Rows {
		w = Worst(w, row.OverallStatus)
	}
	return w
}

// Counts returns the number of rows per overall status.
func (r *Report) Counts() map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, row := range r.Rows {
		counts[row.OverallStatus]++
	}
	return counts
}

// Row returns the analysis for the given row id.
func (r *Report) Row(id int) (RowAnalysis, bool) {
	for _, row := range r.Rows {
		if row.RowID == id {
			return row, true
		}
	}
	return RowAnalysis{}, false
}
