package render

import (
	"bytes"
	"fmt"
	"math"
)

// SVGOption adjusts how a layout is serialized to SVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette Palette
	radius  float64
	caption bool
}

// WithPalette overrides the default colors.
func WithPalette(p Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithNodeRadius overrides the default circle radius.
func WithNodeRadius(radius float64) SVGOption { return func(r *svgRenderer) { r.radius = radius } }

// WithCaption adds the receptive-field readout as a text line inside the
// frame, so exported files carry the number the interactive surfaces show.
func WithCaption() SVGOption { return func(r *svgRenderer) { r.caption = true } }

// RenderSVG serializes a layout to a standalone SVG document.
//
// Edges are written before nodes so every arrow runs beneath the circles,
// and the arrowhead is pulled back to the circle's rim so it stays
// visible. The viewBox matches the layout viewport; being vector output,
// the file is crisp at any display density, and [ToPNG] takes a scale
// factor for rasterization.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{palette: DefaultPalette(), radius: NodeRadius}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.palette.Background)

	for _, a := range l.Arrows {
		renderArrow(&buf, a, r.palette.Edge, r.radius)
	}
	for _, d := range l.Dots {
		fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			d.X, d.Y, r.radius, r.palette.Fill(d.Role))
	}

	if r.caption {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="14" fill="%s">receptive field: %d samples</text>`+"\n",
			Margin, l.Height-12.0, r.palette.Edge, l.Field)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderArrow draws one edge as a line plus a filled arrowhead whose tip
// rests on the target circle's rim.
func renderArrow(buf *bytes.Buffer, a Arrow, color string, radius float64) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
		a.X1, a.Y1, a.X2, a.Y2, color, EdgeWidth)

	dx, dy := a.X2-a.X1, a.Y2-a.Y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return // degenerate self-edge, nothing to point at
	}
	ux, uy := dx/length, dy/length

	tipX, tipY := a.X2-ux*radius, a.Y2-uy*radius
	baseX, baseY := tipX-ux*ArrowLength, tipY-uy*ArrowLength
	wing := ArrowLength * 0.4
	fmt.Fprintf(buf, `  <polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
		tipX, tipY,
		baseX-uy*wing, baseY+ux*wing,
		baseX+uy*wing, baseY-ux*wing,
		color)
}
