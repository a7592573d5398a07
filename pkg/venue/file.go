package venue

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

type venueFile struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Base        string        `toml:"base"`
	Screen      screenTable   `toml:"screen"`
	Vertical    bandTable     `toml:"vertical"`
	Horizontal  bandTable     `toml:"horizontal"`
	Sightline   sightlineRule `toml:"sightline"`
}

type screenTable struct {
	Bottom           *float64 `toml:"bottom"`
	Top              *float64 `toml:"top"`
	Height           *float64 `toml:"height"`
	Center           *float64 `toml:"center"`
	Width            *float64 `toml:"width"`
	HorizontalOffset *float64 `toml:"horizontal_offset"`
	Reference        *string  `toml:"reference"`
	DesignEyeHeight  *float64 `toml:"design_eye_height"`
}

type bandTable struct {
	Optimal    []float64 `toml:"optimal"`
	Acceptable []float64 `toml:"acceptable"`
	Marginal   []float64 `toml:"marginal"`
	Warning    []float64 `toml:"warning"`
}

type sightlineRule struct {
	HeadAllowance *float64 `toml:"head_allowance"`
	MinClearance  *float64 `toml:"min_clearance"`
	EarMin        *float64 `toml:"ear_min"`
	EarMax        *float64 `toml:"ear_max"`
	MaxRiser      *float64 `toml:"max_riser"`
}

// Load reads a venue file from path. The standard is named after the file
// when the file has no name key.
func Load(path string) (Standard, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Standard{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Standard{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "venue file %s", path)
		}
		return Standard{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	std, err := Decode(f)
	if err != nil {
		return Standard{}, fmt.Errorf("%s: %w", path, err)
	}
	if std.Name == "" {
		std.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return std, nil
}

// Decode reads a venue file from r, applies it on top of its base preset
// and validates the result. The returned name is empty when the file does
// not set one.
func Decode(r io.Reader) (Standard, error) {
	var vf venueFile
	md, err := toml.NewDecoder(r).Decode(&vf)
	if err != nil {
		return Standard{}, errors.Wrap(errors.ErrCodeInvalidStandard, err, "decode venue")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Standard{}, errors.New(errors.ErrCodeInvalidStandard, "unknown key %q", undecoded[0].String())
	}

	std, err := Lookup(vf.Base)
	if err != nil {
		return Standard{}, err
	}
	if vf.Name != "" {
		if err := errors.ValidateName(errors.ErrCodeInvalidStandard, vf.Name); err != nil {
			return Standard{}, err
		}
	}
	std.Name = vf.Name
	if vf.Description != "" {
		std.Description = vf.Description
	}

	vf.Screen.apply(&std.Screen)
	th := &std.Screen.Thresholds
	if err := vf.Vertical.apply("vertical", &th.Vertical); err != nil {
		return Standard{}, err
	}
	if err := vf.Horizontal.apply("horizontal", &th.Horizontal); err != nil {
		return Standard{}, err
	}
	vf.Sightline.apply(th)

	std.Screen = std.Screen.Normalize()
	if err := std.Screen.Validate(); err != nil {
		return Standard{}, errors.Wrap(errors.ErrCodeInvalidStandard, err, "venue")
	}
	return std, nil
}

func (t screenTable) apply(s *sightline.ScreenConfig) {
	// A file giving the extent as height/center replaces the base's
	// bottom/top entirely.
	if t.Height != nil && t.Top == nil {
		center := (s.Bottom + s.Top) / 2
		s.Top, s.Center = 0, 0
		if t.Bottom == nil && t.Center == nil {
			s.Center = center
		}
	}
	set(&s.Bottom, t.Bottom)
	set(&s.Top, t.Top)
	set(&s.Height, t.Height)
	set(&s.Center, t.Center)
	set(&s.Width, t.Width)
	set(&s.HorizontalOffset, t.HorizontalOffset)
	set(&s.DesignEyeHeight, t.DesignEyeHeight)
	if t.Reference != nil {
		s.Reference = sightline.Reference(*t.Reference)
	}
}

func (t bandTable) apply(name string, b *sightline.Band) error {
	for _, tier := range []struct {
		label string
		v     []float64
		dst   *sightline.Range
	}{
		{"optimal", t.Optimal, &b.Optimal},
		{"acceptable", t.Acceptable, &b.Acceptable},
		{"marginal", t.Marginal, &b.Marginal},
		{"warning", t.Warning, &b.Warning},
	} {
		if tier.v == nil {
			continue
		}
		if len(tier.v) != 2 {
			return errors.New(errors.ErrCodeInvalidStandard,
				"%s.%s: want [min, max], got %d values", name, tier.label, len(tier.v))
		}
		*tier.dst = sightline.Range{Min: tier.v[0], Max: tier.v[1]}
	}
	return nil
}

func (t sightlineRule) apply(th *sightline.Thresholds) {
	set(&th.HeadAllowance, t.HeadAllowance)
	set(&th.MinClearance, t.MinClearance)
	set(&th.EarHeight.Min, t.EarMin)
	set(&th.EarHeight.Max, t.EarMax)
	set(&th.MaxRiser, t.MaxRiser)
}

func set(dst, v *float64) {
	if v != nil {
		*dst = *v
	}
}
