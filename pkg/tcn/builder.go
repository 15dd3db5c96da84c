package tcn

import (
	"math/rand/v2"
	"time"
)

// Builder generates receptive-field graphs from architecture parameters.
// The random source drives the stochastic rounding of fractional dilation
// gaps and is injected so callers can pin a seed for reproducible graphs.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a Builder over the given random source. A nil source
// falls back to a time-seeded generator, so interactive use gets a fresh
// draw sequence per process while tests pass [NewSource] with a fixed seed.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = NewSource(uint64(time.Now().UnixNano()))
	}
	return &Builder{rng: rng}
}

// NewSource creates the PCG random source used throughout the project,
// derived from a single seed. Two builders constructed from the same seed
// produce identical graphs for identical parameters.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Generate builds the dependency graph of the final output sample for a
// TCN with kernel size k, dilation growth d, and L blocks.
//
// Callers guarantee the documented ranges ([Params.Validate]); Generate
// itself does not re-validate. Out-of-range input degrades (for d < 1
// taps may collide, for L = 0 the graph is a single output node) but
// never panics.
//
// # Algorithm
//
// Generate walks the dependency structure backward from the output:
//  1. Create the output node at (L, 0), mark it active, and seed a FIFO
//     queue with it.
//  2. For each dequeued node above the input layer, connect its k kernel
//     taps. Tap 0 reads the same time step; every further tap moves
//     back by a sampled dilation gap for the source layer (see
//     [Builder.SampleGap]), accumulating the offset. Each tap fetches or
//     creates the predecessor one layer down, upgrades it to active,
//     and records the edge predecessor -> current.
//  3. Predecessors are enqueued only when newly created. A node that
//     already exists was already queued by an earlier path; expanding it
//     again would give it a second set of taps and break the exactly-k
//     fan-in invariant.
//  4. After the traversal drains, fill every remaining (layer, t) slot
//     with layer in [0, L] and t in [MinT, 0] as an inactive node, purely
//     for display completeness.
//
// The edge list keeps discovery order. Repeated calls with the same
// parameters yield different graphs whenever d has a fractional part;
// that variation is the point of the stochastic rounding, not a bug.
func (b *Builder) Generate(k int, d float64, L int) *Graph {
	g := New()

	out, _ := g.Activate(L, 0)
	queue := make([]*Node, 0, 16)
	queue = append(queue, out)

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr.Layer == 0 {
			continue // raw input has no predecessors
		}

		offset := 0
		for tap := 0; tap < k; tap++ {
			if tap > 0 {
				offset += b.SampleGap(d, curr.Layer-1)
			}
			pred, created := g.Activate(curr.Layer-1, curr.T-offset)
			g.AddEdge(pred.Coord(), curr.Coord())
			if created {
				queue = append(queue, pred)
			}
		}
	}

	fillGrid(g)
	return g
}

// fillGrid completes the display grid within the traversed bounds. Touch
// leaves existing nodes alone, so active flags survive.
func fillGrid(g *Graph) {
	for layer := 0; layer <= g.Layers(); layer++ {
		for t := g.MinT(); t <= 0; t++ {
			g.Touch(layer, t)
		}
	}
}
