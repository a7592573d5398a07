// Package render turns an analysis report into output artifacts.
//
// [JSON] encodes the report as indented JSON. [SVG] draws a section view of
// the room: the screen on the left, the floor datum, one riser block and eye
// point per row, and each row's sightline to the screen reference point,
// coloured by the row's overall status. Blocked sightlines are dashed.
//
//	report, _ := sightline.Evaluate(rows, screen)
//	svg := render.SVG(report, rows, screen, render.WithWidth(1200))
//
// The drawing uses the same units as the analysis (inches), scaled to fit
// the requested pixel width, so angles in the picture are true angles.
package render
