// Package pipeline provides the core visualization flow for tcnviz.
//
// This package implements the complete generate → layout → render pipeline
// shared by the CLI commands and the interactive surfaces. Centralizing it
// keeps flags, config files, and saved snapshots behaving identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: walk the dependency cone backward from the output sample
//  2. Layout: place nodes and edges on the requested viewport
//  3. Render: serialize to one or more output formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Kernel:  3,
//	    Growth:  2.0,
//	    Blocks:  4,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Generate(ctx, opts)
//	l := runner.Layout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, g, opts)
package pipeline

import (
	"fmt"
	"time"

	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 600.0

	// DefaultSeed is the default random seed. Fractional growth factors
	// sample tap gaps stochastically; a fixed seed keeps runs reproducible.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG raster scale. 2x covers high-density
	// displays without ballooning file size.
	DefaultScale = 2.0
)

// View constants for the two drawing engines.
const (
	// ViewGrid places nodes on the time/layer grid (the native layout).
	ViewGrid = "grid"
	// ViewGraphviz hands the dependency structure to Graphviz instead.
	ViewGraphviz = "graphviz"
)

// DefaultView is the default drawing engine.
const DefaultView = ViewGrid

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported drawing engines.
var ValidViews = map[string]bool{
	ViewGrid:     true,
	ViewGraphviz: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
type Options struct {
	// Generate options
	Kernel int     `json:"kernel,omitempty"`
	Growth float64 `json:"growth,omitempty"`
	Blocks int     `json:"blocks,omitempty"`
	Seed   uint64  `json:"seed,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats  []string       `json:"formats,omitempty"`
	View     string         `json:"view,omitempty"`
	Scale    float64        `json:"scale,omitempty"`     // PNG raster scale
	Caption  bool           `json:"caption,omitempty"`   // receptive-field readout in SVG
	ShowGrid bool           `json:"show_grid,omitempty"` // inactive nodes in DOT output
	Palette  render.Palette `json:"palette,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the generated receptive-field graph.
	Graph *tcn.Graph

	// Layout contains the positioned draw lists.
	Layout render.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	Field        int
	GenerateTime time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a drawing engine is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: grid, graphviz)", view)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. Idempotent: calling it multiple times has the same effect as
// calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetGenerateDefaults()
	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := o.Params().Validate(); err != nil {
		return err
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults fills unset architecture parameters and the seed.
func (o *Options) SetGenerateDefaults() {
	def := tcn.DefaultParams()
	if o.Kernel == 0 {
		o.Kernel = def.Kernel
	}
	if o.Growth == 0 {
		o.Growth = def.Growth
	}
	if o.Blocks == 0 {
		o.Blocks = def.Blocks
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// SetLayoutDefaults fills unset viewport dimensions.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// SetRenderDefaults fills unset render settings.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.View == "" {
		o.View = DefaultView
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Palette.Input == "" {
		o.Palette = render.DefaultPalette()
	}
}

// Params returns the generate options as a parameter set.
func (o *Options) Params() tcn.Params {
	return tcn.Params{Kernel: o.Kernel, Growth: o.Growth, Blocks: o.Blocks}
}

// IsGraphviz returns true if the Graphviz engine draws the vector formats.
func (o *Options) IsGraphviz() bool {
	return o.View == ViewGraphviz
}
