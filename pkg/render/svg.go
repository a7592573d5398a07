package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/sightline/pkg/sightline"
)

// Defaults for [SVG].
const (
	DefaultWidth = 960.0
	DefaultTheme = ThemeLight
)

const (
	padding     = 48.0 // px around the drawing
	legendSpace = 28.0 // px below the floor for labels
	riserDepth  = 36.0 // inches drawn on each side of a row's eye point
	roomMargin  = 48.0 // inches beyond the last row and above the tallest point
)

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width float64
	theme string
	title string
	grid  bool
}

// WithWidth sets the output width in pixels. Non-positive values are ignored.
func WithWidth(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.width = px
		}
	}
}

// WithTheme selects the light or dark palette. Unknown names are ignored.
func WithTheme(name string) SVGOption {
	return func(r *svgRenderer) {
		if _, ok := palettes[name]; ok {
			r.theme = name
		}
	}
}

// WithTitle draws a caption in the top left corner.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithGrid draws a vertical guide every 4 ft.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// SVG draws a section view of the room. rows supplies riser heights for the
// rows in report; rows missing from it are drawn without a riser.
func SVG(report *sightline.Report, rows []sightline.SeatingRow, screen sightline.ScreenConfig, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, theme: DefaultTheme}
	for _, opt := range opts {
		opt(&r)
	}
	pal := palettes[r.theme]
	screen = screen.Normalize()

	risers := make(map[int]float64, len(rows))
	for _, row := range rows {
		risers[row.ID] = row.RiserHeight
	}

	head := screen.Thresholds.HeadAllowance
	worldW, worldH := riserDepth, screen.Top
	for _, a := range report.Rows {
		worldW = max(worldW, a.DistFromScreen*12+riserDepth)
		worldH = max(worldH, a.EyeHeight+head)
	}
	worldW += roomMargin
	worldH += roomMargin

	scale := (r.width - 2*padding) / worldW
	height := worldH*scale + 2*padding + legendSpace
	px := func(x float64) float64 { return padding + x*scale }
	py := func(y float64) float64 { return padding + (worldH-y)*scale }
	floor := py(0)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif" font-size="12">`+"\n",
		r.width, height, r.width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", pal.background)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" fill="%s" font-size="16">%s</text>`+"\n",
			padding, padding/2, pal.foreground, html.EscapeString(r.title))
	}

	if r.grid {
		for ft := 4.0; ft*12 < worldW; ft += 4 {
			x := px(ft * 12)
			fmt.Fprintf(&buf, `  <line class="grid" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5" stroke-dasharray="2 4"/>`+"\n",
				x, py(worldH), x, floor, pal.muted)
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">%g ft</text>`+"\n",
				x, floor+legendSpace, pal.muted, ft)
		}
	}

	// Risers first so that sightlines are drawn over them.
	for _, a := range report.Rows {
		riser := risers[a.RowID]
		if riser <= 0 {
			continue
		}
		d := a.DistFromScreen * 12
		left := max(d-riserDepth, 0)
		fmt.Fprintf(&buf, `  <rect class="riser" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			px(left), py(riser), (d+riserDepth-left)*scale, riser*scale, pal.riser)
	}

	fmt.Fprintf(&buf, `  <line class="floor" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
		px(0), floor, px(worldW), floor, pal.foreground)
	fmt.Fprintf(&buf, `  <line class="screen" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="6"/>`+"\n",
		px(0), py(screen.Bottom), px(0), py(screen.Top), pal.screen)

	ref := report.ReferenceHeight
	fmt.Fprintf(&buf, `  <circle class="reference" cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n",
		px(0), py(ref), pal.foreground)

	for _, a := range report.Rows {
		renderRow(&buf, a, ref, head, px, py, floor, pal)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRow(buf *bytes.Buffer, a sightline.RowAnalysis, ref, head float64, px, py func(float64) float64, floor float64, pal palette) {
	color := StatusColor(a.OverallStatus)
	x, eye := px(a.DistFromScreen*12), py(a.EyeHeight)

	dash := ""
	if a.SightlineBlocked {
		dash = ` stroke-dasharray="6 4"`
	}
	fmt.Fprintf(buf, `  <g class="row" id="row-%d" data-status="%s">`+"\n", a.RowID, a.OverallStatus)
	fmt.Fprintf(buf, `    <line class="sightline" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"%s/>`+"\n",
		x, eye, px(0), py(ref), color, dash)
	fmt.Fprintf(buf, `    <line class="head" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>`+"\n",
		x, eye, x, py(a.EyeHeight+head), pal.muted)
	fmt.Fprintf(buf, `    <circle class="eye" cx="%.1f" cy="%.1f" r="4" fill="%s"/>`+"\n", x, eye, color)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">R%d</text>`+"\n",
		x, floor+14, pal.foreground, a.RowID)
	fmt.Fprintf(buf, `    <title>Row %d: %s, VVA %.1f°, HVA %.1f°</title>`+"\n",
		a.RowID, a.OverallStatus, a.VerticalViewingAngle, a.HorizontalViewingAngle)
	buf.WriteString("  </g>\n")
}
