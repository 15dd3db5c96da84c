package tcn

import (
	"errors"
	"fmt"
	"math"
)

// Documented parameter ranges. Surfaces validate or clamp against these
// before calling [Builder.Generate]; the builder itself never re-checks.
const (
	MinKernel = 2 // below 2 a "kernel" stops being a kernel
	MaxKernel = 9

	MinGrowth  = 1.0
	MaxGrowth  = 4.0
	GrowthStep = 0.1

	MinBlocks = 1
	MaxBlocks = 10
)

var (
	// ErrKernelRange is returned by [Params.Validate] when the kernel size
	// is outside [MinKernel, MaxKernel].
	ErrKernelRange = errors.New("kernel size out of range")

	// ErrGrowthRange is returned by [Params.Validate] when the dilation
	// growth is outside [MinGrowth, MaxGrowth].
	ErrGrowthRange = errors.New("dilation growth out of range")

	// ErrBlocksRange is returned by [Params.Validate] when the block count
	// is outside [MinBlocks, MaxBlocks].
	ErrBlocksRange = errors.New("block count out of range")
)

// Params bundles the three architecture parameters that define a graph.
type Params struct {
	Kernel int     // taps per convolution kernel (k)
	Growth float64 // dilation growth factor per layer (d)
	Blocks int     // number of convolution blocks (L)
}

// DefaultParams returns the parameter set surfaces start from: a modest
// network whose receptive field is large enough to show the dilation cone
// without flooding the picture.
func DefaultParams() Params {
	return Params{Kernel: 3, Growth: 2.0, Blocks: 4}
}

// Validate returns the first range violation, wrapped with the offending
// value, or nil when all three parameters are in range.
func (p Params) Validate() error {
	if p.Kernel < MinKernel || p.Kernel > MaxKernel {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrKernelRange, p.Kernel, MinKernel, MaxKernel)
	}
	if p.Growth < MinGrowth || p.Growth > MaxGrowth {
		return fmt.Errorf("%w: %.1f (must be %.1f-%.1f)", ErrGrowthRange, p.Growth, MinGrowth, MaxGrowth)
	}
	if p.Blocks < MinBlocks || p.Blocks > MaxBlocks {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrBlocksRange, p.Blocks, MinBlocks, MaxBlocks)
	}
	return nil
}

// Clamp returns a copy of p with every parameter forced into range and the
// growth snapped to its slider step. Interactive surfaces clamp; the CLI
// validates and reports instead.
func (p Params) Clamp() Params {
	p.Kernel = min(max(p.Kernel, MinKernel), MaxKernel)
	p.Growth = min(max(snapGrowth(p.Growth), MinGrowth), MaxGrowth)
	p.Blocks = min(max(p.Blocks, MinBlocks), MaxBlocks)
	return p
}

// Delay returns the advisory delay readout for these parameters.
func (p Params) Delay() int {
	return Delay(p.Growth, p.Blocks)
}

// String renders the parameters the way they appear in logs and titles.
func (p Params) String() string {
	return fmt.Sprintf("k=%d d=%.1f L=%d", p.Kernel, p.Growth, p.Blocks)
}

// snapGrowth rounds to the nearest slider step so 1.4000000000000001 and
// friends from repeated float stepping collapse back onto the 0.1 grid.
func snapGrowth(d float64) float64 {
	return math.Round(d/GrowthStep) * GrowthStep
}
