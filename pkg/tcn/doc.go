// Package tcn models the receptive field of a temporal convolutional
// network as a dependency graph.
//
// # Overview
//
// A TCN stacks L blocks of causal dilated 1D convolutions. The final
// output sample at time t=0 depends on a widening cone of earlier samples:
// each layer reads k taps from the layer below, spaced by a dilation that
// grows by a factor d per layer. This package answers "which input samples
// can influence the output?" by walking that dependency structure backward
// from the output node. No tensors are convolved; only the topology is
// modeled.
//
// # Pipeline
//
// The typical flow builds a graph from three architecture parameters and
// hands it to the render package:
//
//	b := tcn.NewBuilder(tcn.NewSource(42))
//	g := b.Generate(3, 2.0, 4)
//
//	l := render.Build(g, 800, 600)
//	svg := render.RenderSVG(l, render.WithCaption())
//
// Fractional dilation growth (say d=1.5) cannot produce integer tap
// spacings directly. The builder resolves this with stochastic rounding:
// each gap is floor(ideal) plus one extra step with probability equal to
// the fractional remainder, so the expected receptive field matches the
// continuous ideal while every concrete graph stays on the integer grid.
// The random source is injected, which pins graphs for tests and makes
// the variation reproducible.
package tcn
