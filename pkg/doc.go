// Package pkg provides the core libraries for tcnviz receptive-field visualization.
//
// # Overview
//
// tcnviz draws the receptive field of a temporal convolutional network:
// the cone of input samples that can influence one output sample, given a
// kernel size, a dilation growth factor, and a block count. The pkg
// directory is organized into three main areas:
//
//  1. [tcn] - Domain logic (graph generation, dilation math, parameters)
//  2. [render] - Visualization (layout, palettes, SVG/DOT/PNG/PDF sinks)
//  3. [pipeline] - Orchestration (generate → layout → render)
//
// # Architecture
//
// The typical data flow through tcnviz:
//
//	Params (k, d, L, seed)
//	         ↓
//	    [tcn] package (backward traversal from the output node)
//	         ↓
//	    [render] package (layout + color roles)
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Generate a receptive-field graph and render it to SVG:
//
//	import (
//	    "github.com/AllendiaLabs/tcn-visualization/pkg/render"
//	    "github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
//	)
//
//	// 1. Generate the graph
//	b := tcn.NewBuilder(tcn.NewSource(42))
//	g := b.Generate(3, 2.0, 4)
//
//	// 2. Compute layout
//	l := render.Build(g, 800, 600)
//
//	// 3. Render to SVG
//	svg := render.RenderSVG(l, render.WithCaption())
//
// # Main Packages
//
// [tcn] - Receptive-field graphs on an integer (layer, time) grid. The
// builder walks dependencies backward from the output sample; fractional
// dilation growth is resolved by stochastic rounding with an injected
// random source, so graphs are reproducible per seed.
//
// [render] - Viewport layout and sinks. The grid view maps time left to
// right and layers bottom to top; the dot view hands the same structure to
// Graphviz. PNG and PDF are produced by converting SVG through
// rsvg-convert.
//
// [pipeline] - Complete visualization pipeline (generate → layout →
// render) used by every CLI command. Ensures consistent defaults and
// validation across entry points.
//
// [io] - Snapshot serialization: a graph plus the parameters that produced
// it, as JSON. Round-trips through ExportJSON/ImportJSON.
//
// [config] - Optional TOML defaults file merged under command-line flags.
//
// [observability] - Pluggable pipeline hooks with no-op defaults.
//
// [buildinfo] - Version metadata stamped at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/tcn/...      # Specific package
//	go test -run Example       # Examples only
//
// [tcn]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/tcn
// [render]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/io
// [config]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/config
// [observability]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/AllendiaLabs/tcn-visualization/pkg/buildinfo
package pkg
