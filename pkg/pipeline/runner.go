package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/observability"
	"github.com/matzehuels/sightline/pkg/render"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-run state, so one Runner can serve concurrent
// callers with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default key scheme and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// analysisInput is the canonical form hashed for the analysis cache key.
type analysisInput struct {
	Rows   []sightline.SeatingRow `json:"rows"`
	Screen sightline.ScreenConfig `json:"screen"`
}

// artifactInput is everything a rendered artifact depends on.
type artifactInput struct {
	Report *sightline.Report      `json:"report"`
	Rows   []sightline.SeatingRow `json:"rows"`
	Screen sightline.ScreenConfig `json:"screen"`
}

// Execute runs load → analyze → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	loadStart := time.Now()
	std, err := ResolveStandard(opts)
	if err != nil {
		return nil, fmt.Errorf("standard: %w", err)
	}
	rows, err := r.LoadRows(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Standard = std
	result.Rows = rows
	result.Stats.RowCount = len(rows)
	result.Stats.LoadTime = time.Since(loadStart)

	analyzeStart := time.Now()
	report, hit, err := r.AnalyzeWithCacheInfo(ctx, rows, std.Screen, opts.Refresh)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Report = report
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.AnalyzeHit = hit

	r.Logger.Info("analyzed rows",
		"standard", std.Name,
		"rows", len(rows),
		"worst", report.Worst(),
		"advisories", len(report.Advisories),
		"duration", result.Stats.AnalyzeTime)
	for _, adv := range report.Advisories {
		r.Logger.Warn(adv.Message, "row", adv.RowID, "kind", adv.Kind)
	}

	if len(opts.Formats) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, report, rows, std.Screen, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Analyze evaluates rows against screen, reusing a cached report for
// identical input.
func (r *Runner) Analyze(ctx context.Context, rows []sightline.SeatingRow, screen sightline.ScreenConfig) (*sightline.Report, error) {
	report, _, err := r.AnalyzeWithCacheInfo(ctx, rows, screen, false)
	return report, err
}

// AnalyzeWithCacheInfo is like [Runner.Analyze] and also reports whether the
// cache was used. With refresh set the cache is not read.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, rows []sightline.SeatingRow, screen sightline.ScreenConfig, refresh bool) (*sightline.Report, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnAnalyzeStart(ctx, len(rows))
	start := time.Now()

	inputHash, err := cache.HashJSON(analysisInput{Rows: rows, Screen: screen.Normalize()})
	if err != nil {
		hooks.OnAnalyzeComplete(ctx, len(rows), time.Since(start), err)
		return nil, false, err
	}
	key := r.Keyer.AnalysisKey(inputHash)

	if !refresh {
		if report, ok := r.cachedReport(ctx, key); ok {
			hooks.OnAnalyzeComplete(ctx, len(rows), time.Since(start), nil)
			return report, true, nil
		}
	}

	report, err := sightline.Evaluate(rows, screen)
	hooks.OnAnalyzeComplete(ctx, len(rows), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(report); err == nil {
		r.store(ctx, "analysis", key, data, cache.AnalysisTTL)
	}
	return report, false, nil
}

func (r *Runner) cachedReport(ctx context.Context, key string) (*sightline.Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	var report sightline.Report
	if err := json.Unmarshal(data, &report); err != nil {
		observability.Cache().OnCacheMiss(ctx, "analysis")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "analysis")
	return &report, true
}

// Render produces the artifacts requested in opts.
func (r *Runner) Render(ctx context.Context, report *sightline.Report, rows []sightline.SeatingRow, screen sightline.ScreenConfig, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, report, rows, screen, opts)
	return artifacts, err
}

// RenderWithCacheInfo is like [Runner.Render] and also reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, report *sightline.Report, rows []sightline.SeatingRow, screen sightline.ScreenConfig, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	reportHash, err := cache.HashJSON(artifactInput{Report: report, Rows: rows, Screen: screen.Normalize()})
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(reportHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := renderFormat(format, report, rows, screen, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		r.store(ctx, "artifact", key, data, cache.ArtifactTTL)
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, allHit && len(opts.Formats) > 0, nil
}

func renderFormat(format string, report *sightline.Report, rows []sightline.SeatingRow, screen sightline.ScreenConfig, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.JSON(report)
	case FormatSVG:
		return render.SVG(report, rows, screen, opts.svgOptions()...), nil
	}
	return nil, ValidateFormat(format)
}

// store writes to the cache. Failures are logged and otherwise ignored since
// every entry can be recomputed.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
