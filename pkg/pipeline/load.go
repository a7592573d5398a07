package pipeline

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/sightline/pkg/io"
	"github.com/matzehuels/sightline/pkg/observability"
	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// ResolveStandard returns the standard selected by opts: the venue file if
// one is given, otherwise the named preset. opts.Screen, when set, replaces
// the resolved screen.
func ResolveStandard(opts Options) (venue.Standard, error) {
	var (
		std venue.Standard
		err error
	)
	if opts.VenuePath != "" {
		std, err = venue.Load(opts.VenuePath)
	} else {
		std, err = venue.Lookup(opts.Standard)
	}
	if err != nil {
		return venue.Standard{}, err
	}
	if opts.Screen != nil {
		std.Screen = *opts.Screen
		std.Description = "custom screen"
	}
	return std, nil
}

// LoadRows returns the rows named by opts: the contents of RowsPath if set,
// otherwise opts.Rows.
func (r *Runner) LoadRows(ctx context.Context, opts Options) ([]sightline.SeatingRow, error) {
	if opts.RowsPath == "" {
		return opts.Rows, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.RowsPath)
	start := time.Now()

	rows, err := pkgio.ImportRows(opts.RowsPath)
	hooks.OnLoadComplete(ctx, opts.RowsPath, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded rows", "path", opts.RowsPath, "rows", len(rows))
	return rows, nil
}
