package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	tcnio "github.com/AllendiaLabs/tcn-visualization/pkg/io"
	"github.com/AllendiaLabs/tcn-visualization/pkg/observability"
	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger; it stores no pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete generate → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Generate
	generateStart := time.Now()
	g, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Graph = g
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("generated graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l := r.Layout(ctx, g, opts)
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Field = l.Field

	r.Logger.Info("computed layout",
		"field", l.Field,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate builds the receptive-field graph for the configured parameters.
func (r *Runner) Generate(ctx context.Context, opts Options) (*tcn.Graph, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Kernel, opts.Growth, opts.Blocks)
	start := time.Now()

	b := tcn.NewBuilder(tcn.NewSource(opts.Seed))
	g := b.Generate(opts.Kernel, opts.Growth, opts.Blocks)

	hooks.OnGenerateComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start))
	return g, nil
}

// Layout places a generated graph on the configured viewport.
func (r *Runner) Layout(ctx context.Context, g *tcn.Graph, opts Options) render.Layout {
	opts.SetLayoutDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()

	l := render.Build(g, opts.Width, opts.Height)

	hooks.OnLayoutComplete(ctx, time.Since(start))
	return l
}

// Render serializes a layout (and its graph) into the requested formats.
func (r *Runner) Render(ctx context.Context, l render.Layout, g *tcn.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		data, err := renderFormat(l, g, format, opts)

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderFormat serializes one output format.
func renderFormat(l render.Layout, g *tcn.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderVector(l, g, opts)
	case FormatPNG:
		svg, err := renderVector(l, g, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, opts.Scale)
	case FormatPDF:
		svg, err := renderVector(l, g, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	case FormatDOT:
		return []byte(render.ToDOT(g, opts.dotOptions())), nil
	case FormatJSON:
		var buf bytes.Buffer
		snap := tcnio.Snapshot{Graph: g, Params: opts.Params(), Seed: opts.Seed, HasParams: true}
		if err := tcnio.WriteJSON(snap, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// renderVector produces the SVG that the vector formats share, using the
// engine selected by opts.View.
func renderVector(l render.Layout, g *tcn.Graph, opts Options) ([]byte, error) {
	if opts.IsGraphviz() {
		return render.RenderDOT(render.ToDOT(g, opts.dotOptions()))
	}
	return render.RenderSVG(l, opts.svgOptions()...), nil
}

func (o *Options) svgOptions() []render.SVGOption {
	svgOpts := []render.SVGOption{render.WithPalette(o.Palette)}
	if o.Caption {
		svgOpts = append(svgOpts, render.WithCaption())
	}
	return svgOpts
}

func (o *Options) dotOptions() render.DOTOptions {
	return render.DOTOptions{ShowGrid: o.ShowGrid, Palette: o.Palette}
}
