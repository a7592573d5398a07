package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

type jsonDoc struct {
	Rows []sightline.SeatingRow `json:"rows"`
}

type tomlDoc struct {
	Rows []tomlRow `toml:"row"`
}

type tomlRow struct {
	ID             int     `toml:"id"`
	DistFromScreen float64 `toml:"dist_from_screen"`
	EarHeight      float64 `toml:"ear_height"`
	RiserHeight    float64 `toml:"riser_height"`
}

// ReadRows decodes a row list from r in the given format.
//
// The returned slice is never nil for a successfully decoded document; an
// empty document yields an empty list. ReadRows does not close r.
func ReadRows(r io.Reader, format Format) ([]sightline.SeatingRow, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatTOML:
		return readTOML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported row format %q", format)
}

func readJSON(r io.Reader) ([]sightline.SeatingRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var rows []sightline.SeatingRow
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = dec.Decode(&rows)
	} else {
		var doc jsonDoc
		err = dec.Decode(&doc)
		rows = doc.Rows
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode rows")
	}
	if rows == nil {
		rows = []sightline.SeatingRow{}
	}
	return rows, nil
}

func readTOML(r io.Reader) ([]sightline.SeatingRow, error) {
	var doc tomlDoc
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode rows")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "decode rows: unknown key %q", undecoded[0].String())
	}

	rows := make([]sightline.SeatingRow, len(doc.Rows))
	for i, tr := range doc.Rows {
		rows[i] = sightline.SeatingRow(tr)
	}
	return rows, nil
}

// ImportRows reads a row list file, choosing the format from its extension.
func ImportRows(path string) ([]sightline.SeatingRow, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "rows file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
