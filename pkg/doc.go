// Package pkg holds the libraries behind sightline, a tool that checks
// theater seating rows against a screen.
//
// # Overview
//
// A room is a list of seating rows (distance from the screen, seated ear
// height, riser height) and a screen with a set of viewing-angle bands. For
// every row sightline computes the vertical and horizontal viewing angle,
// the clearance of its sightline over the row in front, and a status from
// optimal to fail.
//
// The typical data flow:
//
//	rows.json / rows.toml          venue preset or venue.toml
//	         ↓                                ↓
//	    [io] package                    [venue] package
//	         ↘                                ↙
//	             [sightline] package (Evaluate)
//	                        ↓
//	             [render] package (JSON, SVG)
//
// [pipeline] ties these together with caching and is shared by the CLI and
// the HTTP API.
//
// # Quick Start
//
//	std, _ := venue.Lookup("home-theater")
//	rows := seating.Add(seating.Default())
//	report, err := sightline.Evaluate(rows, std.Screen)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range report.Rows {
//	    fmt.Printf("row %d: %s\n", r.RowID, r.OverallStatus)
//	}
//
// # Main Packages
//
// [sightline] - Geometry, band classification and the row analyzer.
//
// [venue] - Built-in standards and TOML venue files layered on a preset.
//
// [seating] - Row list editing: add, update and remove rows with stable ids.
//
// [io] - Row list import and export in JSON and TOML.
//
// [render] - JSON reports and SVG section drawings.
//
// [pipeline] - Load, analyze and render with cached results.
//
// [cache] - Null, file and Redis caches behind one interface.
//
// [session] - Editing sessions for the HTTP API, in memory or in Redis.
//
// [server] - chi-based HTTP API over the pipeline and the session store.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by every layer.
//
// # Testing
//
//	go test ./pkg/...                            # All tests
//	SIGHTLINE_TEST_REDIS=localhost:6379 go test ./pkg/cache ./pkg/session
//
// [sightline]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/sightline
// [venue]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/venue
// [seating]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/seating
// [io]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sightline/pkg/errors
package pkg
