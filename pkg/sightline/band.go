package sightline

import (
	"fmt"
	"math"

	"github.com/matzehuels/sightline/pkg/errors"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Within reports whether r is entirely inside o.
func (r Range) Within(o Range) bool {
	return r.Min >= o.Min && r.Max <= o.Max
}

func (r Range) validate(field string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return errors.New(errors.ErrCodeInvalidScreen, "%s: bounds must be finite", field)
	}
	if r.Min > r.Max {
		return errors.New(errors.ErrCodeInvalidScreen, "%s: min %g is greater than max %g", field, r.Min, r.Max)
	}
	return nil
}

// Band classifies a measured angle into severity tiers. Each range must
// contain the previous one; values outside Warning are StatusFail.
type Band struct {
	Optimal    Range `json:"optimal"`
	Acceptable Range `json:"acceptable"`
	Marginal   Range `json:"marginal"`
	Warning    Range `json:"warning"`
}

// Tier returns the range that bounds status s. It is only meaningful for
// StatusOptimal through StatusWarning.
func (b Band) Tier(s Status) Range {
	switch s {
	case StatusOptimal:
		return b.Optimal
	case StatusAcceptable:
		return b.Acceptable
	case StatusMarginal:
		return b.Marginal
	default:
		return b.Warning
	}
}

// Classify returns the best tier containing v.
func (b Band) Classify(v float64) Status {
	for _, s := range Statuses[:StatusFail] {
		if b.Tier(s).Contains(v) {
			return s
		}
	}
	return StatusFail
}

// Pass reports whether v lies in the acceptable range.
func (b Band) Pass(v float64) bool {
	return b.Acceptable.Contains(v)
}

// Validate checks that every range is well formed and nested in the next.
func (b Band) Validate(name string) error {
	tiers := Statuses[:StatusFail]
	for _, s := range tiers {
		if err := b.Tier(s).validate(fmt.Sprintf("%s %s band", name, s)); err != nil {
			return err
		}
	}
	for i := 1; i < len(tiers); i++ {
		inner, outer := tiers[i-1], tiers[i]
		if !b.Tier(inner).Within(b.Tier(outer)) {
			return errors.New(errors.ErrCodeInvalidScreen,
				"%s %s band must lie inside the %s band", name, inner, outer)
		}
	}
	return nil
}

// violation describes the bound v crossed to land in its tier.
type violation struct {
	tier  Status  // the tightest tier v fell out of
	limit float64 // the crossed bound of that tier
	above bool    // true if v exceeded the maximum
}

// violated returns the bound crossed by v, or false if v is optimal.
func (b Band) violated(v float64) (violation, bool) {
	s := b.Classify(v)
	if s == StatusOptimal {
		return violation{}, false
	}
	escaped := b.Tier(s - 1)
	if v > escaped.Max {
		return violation{tier: s - 1, limit: escaped.Max, above: true}, true
	}
	return violation{tier: s - 1, limit: escaped.Min}, true
}
