package cli

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

const (
	// viewerWidth and viewerHeight are the initial window dimensions.
	viewerWidth  = 1024
	viewerHeight = 768

	// tweenDuration is how long nodes glide to their new positions after a
	// parameter change, in seconds.
	tweenDuration = 0.35

	// hudHeight is the dark strip at the top reserved for the readouts.
	hudHeight = 118
)

// dotTween animates one node between layout positions. The x and y tweens
// share the same duration, so curX and curY always describe a point on the
// straight line between the old and new position.
type dotTween struct {
	x, y       *gween.Tween
	curX, curY float32
	role       render.Role
}

// viewer is the ebiten game behind the view command. It owns the current
// parameters, regenerates the graph on every adjustment, and animates nodes
// from their old layout positions to the new ones.
type viewer struct {
	controls controls
	graph    *tcn.Graph
	palette  render.Palette

	dots  map[tcn.Coord]*dotTween
	field int

	cursor  slider
	width   int // logical canvas size, tracked by Layout
	height  int
	resized bool

	saved   string
	saveErr error
}

// newViewer builds a viewer around the given controls and palette.
func newViewer(c controls, pal render.Palette) *viewer {
	v := &viewer{
		controls: c,
		graph:    c.generate(),
		palette:  pal,
		width:    viewerWidth,
		height:   viewerHeight,
	}
	v.retarget()
	return v
}

// retarget recomputes the layout for the current graph and canvas size and
// points every node's tween at its new position. Nodes that existed before
// start from wherever their animation currently is; new nodes appear in
// place.
func (v *viewer) retarget() {
	l := render.Build(v.graph, float64(v.width), float64(v.height-hudHeight))
	v.field = l.Field

	dots := make(map[tcn.Coord]*dotTween, len(l.Dots))
	for _, d := range l.Dots {
		toX := float32(d.X)
		toY := float32(d.Y) + hudHeight

		fromX, fromY := toX, toY
		if prev, ok := v.dots[d.Coord]; ok {
			fromX, fromY = prev.curX, prev.curY
		}

		dots[d.Coord] = &dotTween{
			x:    gween.New(fromX, toX, tweenDuration, ease.OutQuad),
			y:    gween.New(fromY, toY, tweenDuration, ease.OutQuad),
			curX: fromX,
			curY: fromY,
			role: d.Role,
		}
	}
	v.dots = dots
}

// Update implements ebiten.Game. It applies pending key presses and advances
// the position animations by one tick.
func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	changed := v.resized
	v.resized = false

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		if v.cursor > 0 {
			v.cursor--
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		if v.cursor < sliderCount-1 {
			v.cursor++
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		v.controls = v.controls.step(v.cursor, -1)
		v.graph = v.controls.generate()
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		v.controls = v.controls.step(v.cursor, +1)
		v.graph = v.controls.generate()
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.controls.seed = uint64(time.Now().UnixNano())
		v.graph = v.controls.generate()
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		v.saved, v.saveErr = saveSnapshot(v.controls, v.graph)
	}

	if changed {
		v.retarget()
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	for _, d := range v.dots {
		d.curX, _ = d.x.Update(dt)
		d.curY, _ = d.y.Update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.palette.BackgroundRGBA())

	edgeColor := v.palette.EdgeRGBA()
	for _, e := range v.graph.Edges() {
		from, okFrom := v.dots[e.From]
		to, okTo := v.dots[e.To]
		if !okFrom || !okTo {
			continue
		}
		vector.StrokeLine(screen, from.curX, from.curY, to.curX, to.curY, render.EdgeWidth, edgeColor, true)
	}

	for _, d := range v.dots {
		vector.DrawFilledCircle(screen, d.curX, d.curY, render.NodeRadius, v.palette.RGBA(d.role), true)
	}

	v.drawHUD(screen)
}

// drawHUD paints the parameter readouts on a dark strip so the debug text
// stays legible on light palettes.
func (v *viewer) drawHUD(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(v.width), hudHeight, color.RGBA{R: 24, G: 26, B: 30, A: 235}, false)

	var b strings.Builder
	for s := slider(0); s < sliderCount; s++ {
		marker := "  "
		if s == v.cursor {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%-7s %s\n", marker, s.label(), v.controls.value(s))
	}
	fmt.Fprintf(&b, "field %d · %d nodes · %d edges · seed %d\n",
		v.field, v.graph.NodeCount(), v.graph.EdgeCount(), v.controls.seed)
	b.WriteString("arrows adjust/select  R reseed  S save  Q quit")
	if v.saveErr != nil {
		fmt.Fprintf(&b, "\nsave failed: %v", v.saveErr)
	} else if v.saved != "" {
		fmt.Fprintf(&b, "\nsaved %s", v.saved)
	}

	ebitenutil.DebugPrintAt(screen, b.String(), 8, 6)
}

// Layout implements ebiten.Game. The canvas tracks the window size so the
// graph re-spreads when the user resizes.
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != v.width || outsideHeight != v.height {
		v.width = outsideWidth
		v.height = outsideHeight
		v.resized = true
	}
	return outsideWidth, outsideHeight
}
