package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// Slider and preview styles
var (
	sliderSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	sliderNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	sliderDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	previewInputStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	previewHiddenStyle = lipgloss.NewStyle().Foreground(colorBlue)
	previewOutputStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// sliderBarWidth is the gauge width of each parameter slider, in cells.
const sliderBarWidth = 15

// =============================================================================
// ExploreModel - Interactive parameter exploration
// =============================================================================

// exploreModel is the bubbletea model for the explore command. Adjusting a
// slider regenerates the graph immediately; generation is cheap enough that
// no debouncing is needed.
type exploreModel struct {
	controls controls
	cursor   slider
	graph    *tcn.Graph
	width    int // terminal width in cells
	height   int // terminal height in cells
	saved    string
	saveErr  error
}

// newExploreModel creates an explore model and generates its first graph.
func newExploreModel(c controls) exploreModel {
	return exploreModel{
		controls: c,
		graph:    c.generate(),
		width:    80,
		height:   24,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < sliderCount-1 {
				m.cursor++
			}
		case "left", "h":
			m.controls = m.controls.step(m.cursor, -1)
			m.graph = m.controls.generate()
		case "right", "l":
			m.controls = m.controls.step(m.cursor, +1)
			m.graph = m.controls.generate()
		case "r":
			m.controls.seed = uint64(time.Now().UnixNano())
			m.graph = m.controls.generate()
		case "s":
			m.saved, m.saveErr = saveSnapshot(m.controls, m.graph)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("TCN Receptive Field"))
	b.WriteString("\n")
	b.WriteString(sliderDimStyle.Render("↑/↓ select  ←/→ adjust  r reseed  s save  q quit"))
	b.WriteString("\n\n")

	for s := slider(0); s < sliderCount; s++ {
		cursor := "  "
		if s == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-7s %s  %s", cursor, s.label(), sliderBar(m.controls.fraction(s)), m.controls.value(s))
		if s == m.cursor {
			b.WriteString(sliderSelectedStyle.Render(line))
		} else {
			b.WriteString(sliderNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewPreview())
	b.WriteString("\n")

	b.WriteString(sliderDimStyle.Render(fmt.Sprintf("  field %d · %d nodes · %d edges · seed %d",
		render.ReceptiveField(m.graph), m.graph.NodeCount(), m.graph.EdgeCount(), m.controls.seed)))
	b.WriteString("\n")

	if m.saveErr != nil {
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  save failed: %v", m.saveErr)))
		b.WriteString("\n")
	} else if m.saved != "" {
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("  saved %s", m.saved)))
		b.WriteString("\n")
	}

	return b.String()
}

// viewPreview draws the connectivity grid with one row per layer, newest
// sample on the right. Wide graphs are downsampled column-wise to fit the
// terminal; a cell lights up if any sample in its span reaches the output.
func (m exploreModel) viewPreview() string {
	cols := -m.graph.MinT() + 1
	avail := m.width - 6 // leave room for the layer label
	if avail < 10 {
		avail = 10
	}

	step := 1
	for (cols+step-1)/step > avail {
		step++
	}
	cells := (cols + step - 1) / step
	top := m.graph.Layers()

	var b strings.Builder
	for layer := top; layer >= 0; layer-- {
		b.WriteString(sliderDimStyle.Render(fmt.Sprintf("  L%-2d ", layer)))
		for cell := range cells {
			b.WriteString(m.previewCell(layer, m.graph.MinT()+cell*step, step, top))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// previewCell renders one downsampled cell spanning step time ticks starting
// at t0. Active roles win over inactive, and the output marker wins over
// everything so it never disappears at coarse steps.
func (m exploreModel) previewCell(layer, t0, step, top int) string {
	var hasInput, hasHidden, hasInactive bool
	for t := t0; t < t0+step && t <= 0; t++ {
		nd, ok := m.graph.Node(layer, t)
		if !ok {
			continue
		}
		switch render.RoleFor(nd, top) {
		case render.RoleOutput:
			return previewOutputStyle.Render("●")
		case render.RoleInput:
			hasInput = true
		case render.RoleHidden:
			hasHidden = true
		case render.RoleInactive:
			hasInactive = true
		}
	}
	switch {
	case hasInput:
		return previewInputStyle.Render("●")
	case hasHidden:
		return previewHiddenStyle.Render("●")
	case hasInactive:
		return sliderDimStyle.Render("·")
	default:
		return " "
	}
}

// sliderBar renders a fixed-width gauge with the knob at fraction f.
func sliderBar(f float64) string {
	knob := int(f*float64(sliderBarWidth-1) + 0.5)
	var b strings.Builder
	for i := range sliderBarWidth {
		if i == knob {
			b.WriteString("●")
		} else {
			b.WriteString("─")
		}
	}
	return b.String()
}

// saveSnapshot renders the current graph to an SVG in the working directory.
// Filenames carry a random suffix so repeated saves never clobber each other.
func saveSnapshot(c controls, g *tcn.Graph) (string, error) {
	l := render.Build(g, pipeline.DefaultWidth, pipeline.DefaultHeight)
	svg := render.RenderSVG(l, render.WithCaption())

	name := fmt.Sprintf("tcn_k%d_d%.1f_L%d_%s.svg",
		c.params.Kernel, c.params.Growth, c.params.Blocks, uuid.NewString()[:8])
	if err := os.WriteFile(name, svg, 0o644); err != nil {
		return "", err
	}
	return name, nil
}
