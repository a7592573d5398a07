// Package venue provides the named viewing standards a room can be judged
// against and reads custom standards from TOML files.
//
// A standard is a complete [sightline.ScreenConfig]: screen geometry plus the
// severity bands and sightline allowances. Three presets are built in:
//
//   - reference: a 120 in wide screen judged against [sightline.DefaultThresholds]
//   - home-theater: a smaller screen with a wider optimal horizontal band and
//     low risers
//   - commercial: a large auditorium screen with a stricter head allowance
//
// # Venue Files
//
// A venue file starts from a preset and overrides only the keys it sets:
//
//	name = "screening-room"
//	base = "commercial"
//
//	[screen]
//	width = 360
//	bottom = 40
//	top = 190
//
//	[vertical]
//	optimal = [-4, 15]
//
//	[sightline]
//	head_allowance = 4.5
//	min_clearance = 3
//
// Bands are written as two-element [min, max] arrays. The merged result is
// validated before it is returned, so a file that breaks band nesting is
// rejected with an INVALID_STANDARD error.
package venue
