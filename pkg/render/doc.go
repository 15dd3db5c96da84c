// Package render turns receptive-field graphs into pictures.
//
// # Overview
//
// Rendering happens in two steps. [Build] lays the graph out on the
// viewport: time runs left to right (earliest sample at the left margin,
// the output instant at the right), layers run bottom to top (raw input
// at the bottom). The resulting [Layout] carries plain draw lists plus
// the receptive-field readout. A sink then serializes the layout:
//
//	l := render.Build(g, 800, 600)
//	svg := render.RenderSVG(l)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale for high-DPI
//
// Layouts are cheap and recomputed from the live viewport on every pass;
// nothing is cached, so resizes always reflow.
//
// # Sinks
//
// [RenderSVG] writes the grid view directly. [ToDOT] and [RenderDOT]
// produce a Graphviz node-link diagram of the same dependency structure,
// useful when the fan-in matters more than the time axis. [ToPDF] and
// [ToPNG] convert any SVG via the external rsvg-convert tool (librsvg).
package render
