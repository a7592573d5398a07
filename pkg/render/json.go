package render

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sightline/pkg/sightline"
)

// JSON returns the report as indented JSON followed by a newline.
func JSON(report *sightline.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}
