package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tcnio "github.com/AllendiaLabs/tcn-visualization/pkg/io"
	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// renderOpts holds the command-line flags for the render command.
// These options control the network parameters, viewport, and output formats.
type renderOpts struct {
	output   string  // output file path (or base path for multiple formats)
	input    string  // snapshot JSON to render instead of generating
	kernel   int     // taps per convolution kernel (k)
	growth   float64 // dilation growth factor per layer (d)
	blocks   int     // number of convolution blocks (L)
	seed     uint64  // seed for stochastic dilation rounding
	width    float64 // viewport width in pixels
	height   float64 // viewport height in pixels
	scale    float64 // PNG supersampling factor
	view     string  // projection engine: "grid" or "graphviz"
	caption  bool    // annotate the image with the receptive-field size
	showGrid bool    // include inactive grid nodes in DOT output
}

// newRenderCmd creates the render command for generating visualizations.
// It generates a connectivity graph (or loads one from a snapshot) and writes
// it in one or more output formats (SVG, PNG, PDF, DOT, JSON).
//
// Default settings:
//   - parameters: k=3, d=2.0, L=4, seed 42
//   - viewport: 800x600px
//   - view: grid (time/layer projection), format: svg
//
// Values from the config file act as defaults; flags the user sets win.
func newRenderCmd() *cobra.Command {
	var formatsStr string

	p := tcn.DefaultParams()
	flags := renderOpts{
		kernel: p.Kernel,
		growth: p.Growth,
		blocks: p.Blocks,
		seed:   pipeline.DefaultSeed,
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		scale:  pipeline.DefaultScale,
		view:   pipeline.DefaultView,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a receptive-field visualization",
		Long: `Render the connectivity graph of a dilated causal convolution stack.

The render command traces which input samples feed the newest output of a
temporal convolutional network and draws the result. Dilation gaps between
layers are rounded stochastically, so the same parameters and seed always
reproduce the same graph.

Use --input to re-render a previously exported JSON snapshot instead of
generating a new graph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			overlayRenderFlags(cmd, &opts, flags)
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateView(opts.View); err != nil {
				return err
			}
			if flags.output == "-" && len(opts.Formats) > 1 {
				return fmt.Errorf("writing to stdout supports a single format, got %d", len(opts.Formats))
			}
			return runRender(cmd.Context(), flags, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "render a JSON snapshot instead of generating")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().IntVarP(&flags.kernel, "kernel", "k", flags.kernel, "kernel size (taps per convolution)")
	cmd.Flags().Float64VarP(&flags.growth, "growth", "d", flags.growth, "dilation growth factor per layer")
	cmd.Flags().IntVarP(&flags.blocks, "blocks", "l", flags.blocks, "number of convolution blocks")
	cmd.Flags().Uint64Var(&flags.seed, "seed", flags.seed, "seed for stochastic dilation rounding")
	cmd.Flags().Float64Var(&flags.width, "width", flags.width, "frame width")
	cmd.Flags().Float64Var(&flags.height, "height", flags.height, "frame height")
	cmd.Flags().Float64Var(&flags.scale, "scale", flags.scale, "PNG supersampling factor")
	cmd.Flags().StringVar(&flags.view, "view", flags.view, "projection engine: grid (default), graphviz")
	cmd.Flags().BoolVar(&flags.caption, "caption", false, "annotate the image with the receptive-field size")
	cmd.Flags().BoolVar(&flags.showGrid, "show-grid", false, "include inactive grid nodes in DOT output")

	return cmd
}

// overlayRenderFlags applies explicitly set flags on top of config-derived
// options. Flags the user typed win; untouched numeric flags keep the config
// value. View and the toggles have no config counterpart and always come
// from the flags.
func overlayRenderFlags(cmd *cobra.Command, opts *pipeline.Options, flags renderOpts) {
	fs := cmd.Flags()
	if fs.Changed("kernel") {
		opts.Kernel = flags.kernel
	}
	if fs.Changed("growth") {
		opts.Growth = flags.growth
	}
	if fs.Changed("blocks") {
		opts.Blocks = flags.blocks
	}
	if fs.Changed("seed") {
		opts.Seed = flags.seed
	}
	if fs.Changed("width") {
		opts.Width = flags.width
	}
	if fs.Changed("height") {
		opts.Height = flags.height
	}
	if fs.Changed("scale") {
		opts.Scale = flags.scale
	}
	opts.View = flags.view
	opts.Caption = flags.caption
	opts.ShowGrid = flags.showGrid
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output flag.
// If output is empty, it falls back to the given default base.
// If output carries a known format extension (.svg, .png, ...), the
// extension is stripped so per-format suffixes can be appended.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// defaultBase names outputs after the generation parameters,
// e.g. "tcn_k3_d2.0_L4".
func defaultBase(opts pipeline.Options) string {
	return fmt.Sprintf("tcn_k%d_d%.1f_L%d", opts.Kernel, opts.Growth, opts.Blocks)
}

// runRender generates a graph (or loads a snapshot) and writes the requested
// formats to disk.
func runRender(ctx context.Context, flags renderOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	if flags.input != "" {
		return renderSnapshot(ctx, runner, flags, opts)
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	base := basePath(flags.output, defaultBase(opts))
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, flags.output, base)
	if err != nil {
		return err
	}
	if flags.output == "-" {
		return nil // artifact went to stdout, keep it clean
	}

	printSuccess("Rendered %s (seed %d)", opts.Params(), opts.Seed)
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.Field)
	printNextStep("Explore interactively", fmt.Sprintf("tcnviz explore -k %d -d %.1f -l %d", opts.Kernel, opts.Growth, opts.Blocks))
	return nil
}

// renderSnapshot re-renders a previously exported snapshot. The snapshot's
// parameters and seed replace the configured ones so JSON re-exports stay
// faithful to the loaded graph.
func renderSnapshot(ctx context.Context, runner *pipeline.Runner, flags renderOpts, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)

	snap, err := tcnio.ImportJSON(flags.input)
	if err != nil {
		return err
	}
	logger.Info("loaded snapshot",
		"path", flags.input,
		"nodes", snap.Graph.NodeCount(),
		"edges", snap.Graph.EdgeCount())

	opts.Seed = snap.Seed
	if snap.HasParams {
		opts.Kernel = snap.Params.Kernel
		opts.Growth = snap.Params.Growth
		opts.Blocks = snap.Params.Blocks
	}

	l := runner.Layout(ctx, snap.Graph, opts)
	artifacts, err := runner.Render(ctx, l, snap.Graph, opts)
	if err != nil {
		return err
	}

	fallback := strings.TrimSuffix(flags.input, filepath.Ext(flags.input))
	base := basePath(flags.output, fallback)
	paths, err := writeArtifacts(artifacts, opts.Formats, flags.output, base)
	if err != nil {
		return err
	}
	if flags.output == "-" {
		return nil
	}

	printSuccess("Rendered %s", flags.input)
	for _, path := range paths {
		printFile(path)
	}
	printStats(snap.Graph.NodeCount(), snap.Graph.EdgeCount(), l.Field)
	return nil
}

// writeArtifacts writes each rendered format to its own file. A single
// format honors the output path as given; multiple formats share the base
// path with per-format extensions. It returns the written paths in format
// order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}

		out, err := openOutput(path)
		if err != nil {
			return nil, err
		}
		if _, err := out.Write(artifacts[format]); err != nil {
			out.Close()
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
