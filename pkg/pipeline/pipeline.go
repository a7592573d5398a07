// Package pipeline runs the load → analyze → render sequence shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read the row list from a file (or take it from Options.Rows) and
//     resolve the venue standard
//  2. Analyze: run [sightline.Evaluate], memoized by a hash of the input
//  3. Render: produce the requested artifacts (json, svg), memoized by a hash
//     of the report and the render options
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    RowsPath: "room.json",
//	    Standard: "home-theater",
//	    Formats:  []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// A caller that already holds the rows and screen can run a single stage:
//
//	report, err := runner.Analyze(ctx, rows, screen)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/render"
	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Input. RowsPath is read when set; otherwise Rows is used as given.
	RowsPath string                 `json:"rows_path,omitempty"`
	Rows     []sightline.SeatingRow `json:"rows,omitempty"`

	// Standard. VenuePath takes precedence over Standard, and Screen, when
	// set, replaces the screen of whichever standard was resolved.
	Standard  string                  `json:"standard,omitempty"`
	VenuePath string                  `json:"venue_path,omitempty"`
	Screen    *sightline.ScreenConfig `json:"screen,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Theme   string   `json:"theme,omitempty"`
	Title   string   `json:"title,omitempty"`
	Grid    bool     `json:"grid,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	Standard  venue.Standard
	Rows      []sightline.SeatingRow
	Report    *sightline.Report
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information for a run.
type Stats struct {
	RowCount    int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	AnalyzeHit bool // analysis came from cache
	RenderHit  bool // every artifact came from cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: json, svg)", format)
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.RowsPath != "" {
		if err := errors.ValidatePath(o.RowsPath); err != nil {
			return err
		}
	}
	if o.VenuePath != "" {
		if err := errors.ValidatePath(o.VenuePath); err != nil {
			return err
		}
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills in render defaults.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = render.DefaultWidth
	}
	if o.Theme == "" {
		o.Theme = render.DefaultTheme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender checks the render options.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must not be negative")
	}
	return render.ValidateTheme(o.Theme)
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatSVG {
		k.Width = o.Width
		k.Theme = o.Theme
		k.Grid = o.Grid
		k.Title = o.Title
	}
	return k
}

// svgOptions returns the render options for the SVG artifact.
func (o *Options) svgOptions() []render.SVGOption {
	opts := []render.SVGOption{render.WithWidth(o.Width), render.WithTheme(o.Theme)}
	if o.Title != "" {
		opts = append(opts, render.WithTitle(o.Title))
	}
	if o.Grid {
		opts = append(opts, render.WithGrid())
	}
	return opts
}

