package cli

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// newViewCmd creates the view command, which opens the connectivity graph in
// a resizable window. Parameter changes animate nodes from their old
// positions to the new layout, which makes the dilation cone's growth easy
// to follow.
func newViewCmd() *cobra.Command {
	p := tcn.DefaultParams()
	flags := struct {
		kernel int
		growth float64
		blocks int
		seed   uint64
	}{p.Kernel, p.Growth, p.Blocks, pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the receptive field in an animated window",
		Long: `Open the connectivity graph in a resizable window.

The same keys as the terminal explorer apply: arrow keys select and adjust a
parameter, R reseeds the stochastic dilation rounding, S saves the current
graph as an SVG, and Q quits. Node positions animate between layouts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Options()

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

			pal := opts.Palette
			if pal.Input == "" {
				pal = render.DefaultPalette()
			}

			v := newViewer(newControls(opts.Params(), opts.Seed), pal)

			ebiten.SetWindowTitle("tcnviz")
			ebiten.SetWindowSize(viewerWidth, viewerHeight)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			if err := ebiten.RunGame(v); err != nil {
				return err
			}

			if v.saved != "" {
				printSuccess("Saved snapshot")
				printFile(v.saved)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.kernel, "kernel", "k", flags.kernel, "kernel size (taps per convolution)")
	cmd.Flags().Float64VarP(&flags.growth, "growth", "d", flags.growth, "dilation growth factor per layer")
	cmd.Flags().IntVarP(&flags.blocks, "blocks", "l", flags.blocks, "number of convolution blocks")
	cmd.Flags().Uint64Var(&flags.seed, "seed", flags.seed, "seed for stochastic dilation rounding")

	return cmd
}
