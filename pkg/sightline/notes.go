package sightline

import "fmt"

func sightlineNote(frontID int, clearance, minimum float64) string {
	return fmt.Sprintf("sightline blocked by row %d in front, clearance %.1f\" (minimum %g\")", frontID, clearance, minimum)
}

func verticalNote(v float64, b Band) string {
	vi, ok := b.violated(v)
	if !ok {
		return ""
	}
	dir := "level"
	switch {
	case v > 0:
		dir = "looking up"
	case v < 0:
		dir = "looking down"
	}
	if vi.above {
		return fmt.Sprintf("vertical angle %.1f° (%s) exceeds %s maximum of %g°", v, dir, vi.tier, vi.limit)
	}
	return fmt.Sprintf("vertical angle %.1f° (%s) is below %s minimum of %g°", v, dir, vi.tier, vi.limit)
}

func horizontalNote(h float64, b Band) string {
	vi, ok := b.violated(h)
	if !ok {
		return ""
	}
	if vi.above {
		return fmt.Sprintf("horizontal angle %.1f° exceeds %s maximum of %g° (seat too close)", h, vi.tier, vi.limit)
	}
	return fmt.Sprintf("horizontal angle %.1f° is below %s minimum of %g° (seat too far)", h, vi.tier, vi.limit)
}
