package render

import (
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// Fixed drawing constants. The margin keeps the outermost circles clear of
// the frame; radius and arrow size are deliberately not scaled with the
// viewport so dense graphs stay readable.
const (
	Margin      = 40.0
	NodeRadius  = 5.0
	ArrowLength = 10.0
	EdgeWidth   = 1.5
)

// Role classifies a node for coloring. The order is the coloring
// precedence: an inactive node is dim no matter where it sits, and the
// output layer wins over the input check so a single-layer graph keeps
// its output color.
type Role int

const (
	RoleInactive Role = iota
	RoleOutput
	RoleInput
	RoleHidden
)

// RoleFor resolves the color role of a node in a graph whose top layer is
// topLayer.
func RoleFor(n *tcn.Node, topLayer int) Role {
	switch {
	case !n.Active:
		return RoleInactive
	case n.Layer == topLayer:
		return RoleOutput
	case n.Layer == 0:
		return RoleInput
	default:
		return RoleHidden
	}
}

// Dot is a positioned node ready for drawing.
type Dot struct {
	Coord tcn.Coord
	X, Y  float64
	Role  Role
}

// Arrow is a positioned edge ready for drawing, pointing from the earlier
// sample to the node it feeds.
type Arrow struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Layout is one laid-out frame: draw lists in draw order (arrows beneath
// dots) plus the receptive-field readout for the graph it was built from.
type Layout struct {
	Width  float64
	Height float64

	// Field is the receptive-field sample count shown to the user.
	Field int

	Arrows []Arrow
	Dots   []Dot
}

// Build computes node positions for the given viewport.
//
// Time indices map linearly from [MinT, 0] to [Margin, width-Margin] and
// layers from [0, L] to [height-Margin, Margin], so the input layer sits
// at the bottom and the output sample at the top right. Build reads the
// viewport fresh on every call; callers re-run it whenever the surface
// resizes.
func Build(g *tcn.Graph, width, height float64) Layout {
	l := Layout{
		Width:  width,
		Height: height,
		Field:  ReceptiveField(g),
	}

	pos := placer(g, width, height)

	for _, e := range g.Edges() {
		from, to := pos(e.From), pos(e.To)
		l.Arrows = append(l.Arrows, Arrow{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y})
	}
	topLayer := g.Layers()
	for _, n := range g.Nodes() {
		p := pos(n.Coord())
		l.Dots = append(l.Dots, Dot{Coord: n.Coord(), X: p.X, Y: p.Y, Role: RoleFor(n, topLayer)})
	}
	return l
}

// Point is a position on the drawing surface.
type Point struct {
	X, Y float64
}

// placer returns the coordinate mapping for one pass. Degenerate spans
// (single column or single layer) pin to the output corner instead of
// dividing by zero.
func placer(g *tcn.Graph, width, height float64) func(tcn.Coord) Point {
	minT := g.MinT()
	topLayer := g.Layers()
	tSpan := float64(-minT)
	lSpan := float64(topLayer)

	return func(c tcn.Coord) Point {
		x := width - Margin
		if tSpan > 0 {
			x = Margin + float64(c.T-minT)/tSpan*(width-2*Margin)
		}
		y := height - Margin
		if lSpan > 0 {
			y = (height - Margin) - float64(c.Layer)/lSpan*(height-2*Margin)
		}
		return Point{X: x, Y: y}
	}
}

// ReceptiveField derives the displayed receptive-field size: the inclusive
// sample count from the earliest active input node to the output instant.
// A graph without active input nodes reads as 1, the output's own sample.
func ReceptiveField(g *tcn.Graph) int {
	minT, ok := g.MinActiveInputT()
	if !ok {
		return 1
	}
	return -minT + 1
}
