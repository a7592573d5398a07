package sightline

import "math"

const degreesPerRadian = 180 / math.Pi

// VerticalAngle returns the signed angle in degrees between the horizontal
// at eye height and the line to a point at reference height, seen from
// distance inches in front of the screen. Positive means looking up.
func VerticalAngle(reference, eye, distance float64) float64 {
	return math.Atan2(reference-eye, distance) * degreesPerRadian
}

// HorizontalAngle returns the angle in degrees subtended by a screen of the
// given width, seen from distance inches away and offset inches to the side
// of the screen's center line.
func HorizontalAngle(width, offset, distance float64) float64 {
	half := width / 2
	return (math.Atan((half-offset)/distance) + math.Atan((half+offset)/distance)) * degreesPerRadian
}

// LineHeightAt returns the height of the line from an eye at (distance, eye)
// to the screen point at (0, reference), evaluated at horizontal position at.
// Distances are measured from the screen plane in the same unit.
func LineHeightAt(eye, reference, distance, at float64) float64 {
	return eye + (reference-eye)*(distance-at)/distance
}

// Clearance returns how far the sightline of the viewer passes above the
// head of the occupant in front. A negative value means the head intrudes
// into the sightline.
func Clearance(viewer, front SeatingRow, reference, headAllowance float64) float64 {
	projected := LineHeightAt(viewer.EyeHeight(), reference, viewer.DistanceInches(), front.DistanceInches())
	return projected - (front.EyeHeight() + headAllowance)
}
