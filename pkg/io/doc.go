// Package io reads and writes seating row lists as JSON or TOML.
//
// # JSON Format
//
// A row list is an object with a "rows" array, or the bare array itself:
//
//	{
//	  "rows": [
//	    {"id": 1, "distFromScreen": 10, "earHeight": 44, "riserHeight": 0},
//	    {"id": 2, "distFromScreen": 14, "earHeight": 44, "riserHeight": 8}
//	  ]
//	}
//
// Field names match the JSON tags of [sightline.SeatingRow]. Unknown fields
// are rejected so that a misspelled key does not silently become zero.
//
// # TOML Format
//
// The same list in TOML uses an array of tables:
//
//	[[row]]
//	id = 1
//	dist_from_screen = 10
//	ear_height = 44
//	riser_height = 0
//
// # Import and Export
//
// [ReadRows] and [WriteRows] work on any reader or writer with an explicit
// [Format]. [ImportRows] and [ExportRows] work on files and pick the format
// from the file extension (.json or .toml).
//
// Reading only checks the structure of the document. Whether the rows
// describe a valid room is decided by [sightline.Analyze].
package io
