// Package seating edits row lists: it allocates ids, appends rows that
// continue the existing layout, and updates or removes single rows.
//
// Every function returns a new slice and leaves its input untouched, so a
// caller can keep the previous list around (the editor uses this to keep the
// last valid layout when an edit is rejected).
package seating

import (
	"slices"
	"strings"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// Defaults for a new row. The first row sits at FirstDistance with
// FirstEarHeight on the floor; each following row is RowSpacing further back
// on a riser RiserStep higher than the last.
const (
	FirstDistance  = 10.0 // feet
	FirstEarHeight = 44.0 // inches
	RowSpacing     = 4.0  // feet
	RiserStep      = 8.0  // inches
)

// Field names a row value that can be edited.
type Field string

// Editable fields.
const (
	FieldDistance Field = "dist"
	FieldEar      Field = "ear"
	FieldRiser    Field = "riser"
)

// Fields lists the editable fields in display order.
var Fields = []Field{FieldDistance, FieldEar, FieldRiser}

var fieldAliases = map[string]Field{
	"dist":           FieldDistance,
	"distance":       FieldDistance,
	"distfromscreen": FieldDistance,
	"ear":            FieldEar,
	"earheight":      FieldEar,
	"riser":          FieldRiser,
	"riserheight":    FieldRiser,
}

// ParseField resolves a field name, accepting the JSON names as well.
func ParseField(name string) (Field, error) {
	if f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown field %q (want dist, ear or riser)", name)
}

// NextID returns one more than the largest id in rows, or 1 for an empty list.
func NextID(rows []sightline.SeatingRow) int {
	next := 1
	for _, r := range rows {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	return next
}

// Default returns a list holding a single row at the default position.
func Default() []sightline.SeatingRow {
	return Add(nil)
}

// Add appends a row continuing from the last row in the list.
func Add(rows []sightline.SeatingRow) []sightline.SeatingRow {
	row := sightline.SeatingRow{
		ID:             NextID(rows),
		DistFromScreen: FirstDistance,
		EarHeight:      FirstEarHeight,
	}
	if n := len(rows); n > 0 {
		last := rows[n-1]
		row.DistFromScreen = last.DistFromScreen + RowSpacing
		row.EarHeight = last.EarHeight
		row.RiserHeight = last.RiserHeight + RiserStep
	}
	out := make([]sightline.SeatingRow, 0, len(rows)+1)
	return append(append(out, rows...), row)
}

// Remove deletes the row with the given id. The last remaining row cannot be
// removed.
func Remove(rows []sightline.SeatingRow, id int) ([]sightline.SeatingRow, error) {
	i := index(rows, id)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "row %d not found", id)
	}
	if len(rows) == 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot remove the last row")
	}
	return slices.Delete(slices.Clone(rows), i, i+1), nil
}

// Update sets one field of the row with the given id. The value is not
// range-checked here; the analyzer rejects rows it cannot evaluate.
func Update(rows []sightline.SeatingRow, id int, field Field, value float64) ([]sightline.SeatingRow, error) {
	i := index(rows, id)
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "row %d not found", id)
	}
	out := slices.Clone(rows)
	switch field {
	case FieldDistance:
		out[i].DistFromScreen = value
	case FieldEar:
		out[i].EarHeight = value
	case FieldRiser:
		out[i].RiserHeight = value
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown field %q", field)
	}
	return out, nil
}

// Get returns the field value of r.
func Get(r sightline.SeatingRow, field Field) float64 {
	switch field {
	case FieldEar:
		return r.EarHeight
	case FieldRiser:
		return r.RiserHeight
	default:
		return r.DistFromScreen
	}
}

func index(rows []sightline.SeatingRow, id int) int {
	return slices.IndexFunc(rows, func(r sightline.SeatingRow) bool { return r.ID == id })
}
