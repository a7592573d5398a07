package venue

import (
	"slices"
	"strings"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// DefaultName is the preset used when no standard is requested.
const DefaultName = "reference"

// Standard is a named screen configuration.
type Standard struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Screen      sightline.ScreenConfig `json:"screen"`
}

var presets = map[string]func() Standard{
	"reference":    reference,
	"home-theater": homeTheater,
	"commercial":   commercial,
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a fresh copy of the named preset. An empty name selects
// [DefaultName]. Names are matched case-insensitively.
func Lookup(name string) (Standard, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	fn, ok := presets[name]
	if !ok {
		return Standard{}, errors.New(errors.ErrCodeInvalidStandard,
			"unknown standard %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// All returns every preset in name order.
func All() []Standard {
	out := make([]Standard, 0, len(presets))
	for _, name := range Names() {
		out = append(out, presets[name]())
	}
	return out
}

func reference() Standard {
	return Standard{
		Name:        "reference",
		Description: "120 in screen, balanced bands for mixed-use rooms",
		Screen:      sightline.DefaultScreen(),
	}
}

func homeTheater() Standard {
	th := sightline.DefaultThresholds()
	th.Horizontal = sightline.Band{
		Optimal:    sightline.Range{Min: 36, Max: 50},
		Acceptable: sightline.Range{Min: 30, Max: 55},
		Marginal:   sightline.Range{Min: 26, Max: 60},
		Warning:    sightline.Range{Min: 20, Max: 70},
	}
	th.Vertical.Marginal = sightline.Range{Min: -12, Max: 28}
	th.MaxRiser = 48
	return Standard{
		Name:        "home-theater",
		Description: "100 in screen, immersive seating, low risers",
		Screen: sightline.ScreenConfig{
			Bottom:     24,
			Top:        73,
			Width:      87,
			Reference:  sightline.ReferenceCenter,
			Thresholds: th,
		},
	}
}

func commercial() Standard {
	return Standard{
		Name:        "commercial",
		Description: "40 ft auditorium screen, stadium risers",
		Screen: sightline.ScreenConfig{
			Bottom:    48,
			Top:       248,
			Width:     480,
			Reference: sightline.ReferenceCenter,
			Thresholds: sightline.Thresholds{
				Vertical: sightline.Band{
					Optimal:    sightline.Range{Min: -3, Max: 15},
					Acceptable: sightline.Range{Min: -6, Max: 22},
					Marginal:   sightline.Range{Min: -10, Max: 30},
					Warning:    sightline.Range{Min: -15, Max: 35},
				},
				Horizontal: sightline.Band{
					Optimal:    sightline.Range{Min: 30, Max: 45},
					Acceptable: sightline.Range{Min: 26, Max: 55},
					Marginal:   sightline.Range{Min: 20, Max: 60},
					Warning:    sightline.Range{Min: 15, Max: 75},
				},
				HeadAllowance: 5,
				MinClearance:  5,
				EarHeight:     sightline.Range{Min: 30, Max: 60},
				MaxRiser:      480,
			},
		},
	}
}
