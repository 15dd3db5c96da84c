package tcn

import "math"

// delayCap bounds the advisory delay readout. Beyond this the number stops
// being a useful latency figure for audio work.
const delayCap = 512

// SampleGap draws the integer tap spacing for a convolution reading from
// srcLayer, given dilation growth d. The ideal spacing is d^srcLayer,
// which is fractional for non-integer d; the draw returns floor(ideal)
// plus one extra step with probability equal to the fractional remainder.
// Across many draws the expected spacing equals the ideal, so a continuous
// growth slider changes the picture smoothly without biasing the expected
// receptive field.
//
// For integer d the remainder is zero and the result is deterministic.
// Each call is an independent draw.
func (b *Builder) SampleGap(d float64, srcLayer int) int {
	ideal := math.Pow(d, float64(srcLayer))
	gap := int(math.Floor(ideal))
	if frac := ideal - math.Floor(ideal); frac > 0 && b.rng.Float64() < frac {
		gap++
	}
	return gap
}

// Delay returns the advisory delay readout in samples for a network with
// dilation growth d and L blocks: the ideal spacing of the topmost layer's
// taps, d^(L-1), rounded to the nearest sample with a floor of 1. This is
// the figure surfaced next to the sliders; the builder never consumes it.
func Delay(d float64, L int) int {
	if L <= 1 {
		return 1
	}
	delay := int(math.Round(math.Pow(d, float64(L-1))))
	if delay < 1 {
		delay = 1
	}
	return delay
}

// GrowthForDelay inverts [Delay]: it recovers the dilation growth that
// would put the top-layer tap spacing at the requested delay. The inverse
// power is truncated to one decimal to match the growth slider's step, so
// the round trip is lossy by a fraction of a step. The result is clamped
// to the documented growth range. For L = 1 every growth gives delay 1,
// so the minimum growth is returned.
func GrowthForDelay(delay, L int) float64 {
	if L <= 1 || delay <= 1 {
		return MinGrowth
	}
	d := math.Pow(float64(delay), 1/float64(L-1))
	d = math.Trunc(d*10) / 10
	return min(max(d, MinGrowth), MaxGrowth)
}

// MaxDelay returns the largest delay the growth range can produce at the
// given block count, capped at 512 samples. The delay slider rescales to
// this on every L change.
func MaxDelay(L int) int {
	return min(Delay(MaxGrowth, L), delayCap)
}
