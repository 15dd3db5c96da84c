package cli

import (
	"fmt"
	"strconv"

	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// =============================================================================
// Sliders
// =============================================================================

// slider identifies one of the adjustable parameters shared by the
// interactive surfaces.
type slider int

const (
	sliderKernel slider = iota
	sliderGrowth
	sliderBlocks
	sliderDelay

	sliderCount
)

// label returns the display name for the slider.
func (s slider) label() string {
	switch s {
	case sliderKernel:
		return "kernel"
	case sliderGrowth:
		return "growth"
	case sliderBlocks:
		return "blocks"
	default:
		return "delay"
	}
}

// =============================================================================
// Controls
// =============================================================================

// controls holds the parameter-editing state behind the interactive
// surfaces. The terminal explorer and the windowed viewer step the same four
// sliders; keeping the stepping rules here keeps the two in agreement.
//
// The delay slider is advisory: it has no independent state and reads
// through the growth factor, so adjusting either one updates both readouts.
type controls struct {
	params tcn.Params
	seed   uint64
}

// newControls clamps p into range and pairs it with a generation seed.
func newControls(p tcn.Params, seed uint64) controls {
	return controls{params: p.Clamp(), seed: seed}
}

// step adjusts slider s by dir (-1 or +1) and returns the updated controls.
// All parameters clamp to their documented ranges. The delay slider moves in
// whole samples and writes back through the growth factor; with a single
// block the delay is pinned at one sample and the slider is inert.
func (c controls) step(s slider, dir int) controls {
	p := c.params
	switch s {
	case sliderKernel:
		p.Kernel += dir
	case sliderGrowth:
		p.Growth += float64(dir) * tcn.GrowthStep
	case sliderBlocks:
		p.Blocks += dir
	case sliderDelay:
		if p.Blocks <= 1 {
			return c
		}
		delay := min(max(p.Delay()+dir, 1), tcn.MaxDelay(p.Blocks))
		p.Growth = tcn.GrowthForDelay(delay, p.Blocks)
	}
	c.params = p.Clamp()
	return c
}

// value renders the slider's current reading for display.
func (c controls) value(s slider) string {
	switch s {
	case sliderKernel:
		return strconv.Itoa(c.params.Kernel)
	case sliderGrowth:
		return fmt.Sprintf("%.1f", c.params.Growth)
	case sliderBlocks:
		return strconv.Itoa(c.params.Blocks)
	default:
		return fmt.Sprintf("%d/%d samples", c.params.Delay(), tcn.MaxDelay(c.params.Blocks))
	}
}

// fraction reports the slider position within its range, in [0, 1], for
// drawing bar gauges.
func (c controls) fraction(s slider) float64 {
	switch s {
	case sliderKernel:
		return float64(c.params.Kernel-tcn.MinKernel) / float64(tcn.MaxKernel-tcn.MinKernel)
	case sliderGrowth:
		return (c.params.Growth - tcn.MinGrowth) / (tcn.MaxGrowth - tcn.MinGrowth)
	case sliderBlocks:
		return float64(c.params.Blocks-tcn.MinBlocks) / float64(tcn.MaxBlocks-tcn.MinBlocks)
	default:
		maxDelay := tcn.MaxDelay(c.params.Blocks)
		if maxDelay <= 1 {
			return 0
		}
		return float64(c.params.Delay()-1) / float64(maxDelay-1)
	}
}

// generate builds the connectivity graph for the current parameters. Each
// call reseeds the generator, so the same controls always produce the same
// graph.
func (c controls) generate() *tcn.Graph {
	b := tcn.NewBuilder(tcn.NewSource(c.seed))
	return b.Generate(c.params.Kernel, c.params.Growth, c.params.Blocks)
}
