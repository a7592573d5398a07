package render

import (
	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type palette struct {
	background string
	foreground string
	muted      string
	riser      string
	screen     string
}

var palettes = map[string]palette{
	ThemeLight: {background: "#ffffff", foreground: "#212121", muted: "#9e9e9e", riser: "#e0e0e0", screen: "#37474f"},
	ThemeDark:  {background: "#1e1e1e", foreground: "#eeeeee", muted: "#757575", riser: "#424242", screen: "#cfd8dc"},
}

// ValidateTheme reports whether name is a known theme.
func ValidateTheme(name string) error {
	if _, ok := palettes[name]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown theme %q (want light or dark)", name)
	}
	return nil
}

// StatusColor returns the stroke colour used for a status.
func StatusColor(s sightline.Status) string {
	switch s {
	case sightline.StatusOptimal:
		return "#2e7d32"
	case sightline.StatusAcceptable:
		return "#7cb342"
	case sightline.StatusMarginal:
		return "#f9a825"
	case sightline.StatusWarning:
		return "#ef6c00"
	default:
		return "#c62828"
	}
}
