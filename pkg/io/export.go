package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// WriteRows encodes rows to w in the given format. The output can be read
// back with [ReadRows].
func WriteRows(w io.Writer, rows []sightline.SeatingRow, format Format) error {
	if rows == nil {
		rows = []sightline.SeatingRow{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jsonDoc{Rows: rows}); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		doc := tomlDoc{Rows: make([]tomlRow, len(rows))}
		for i, r := range rows {
			doc.Rows[i] = tomlRow(r)
		}
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported row format %q", format)
}

// ExportRows writes rows to a file, choosing the format from its extension.
func ExportRows(rows []sightline.SeatingRow, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteRows(f, rows, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
