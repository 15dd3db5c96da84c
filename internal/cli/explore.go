package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// newExploreCmd creates the explore command, a full-screen terminal UI for
// adjusting parameters and watching the receptive field respond. Parameters
// clamp to their ranges instead of erroring, so every keypress lands on a
// valid architecture.
func newExploreCmd() *cobra.Command {
	p := tcn.DefaultParams()
	flags := struct {
		kernel int
		growth float64
		blocks int
		seed   uint64
	}{p.Kernel, p.Growth, p.Blocks, pipeline.DefaultSeed}

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Explore parameters interactively in the terminal",
		Long: `Explore how kernel size, dilation growth, and depth shape the receptive
field, directly in the terminal.

Use the arrow keys to select and adjust a parameter; the connectivity grid
redraws on every change. Press s to save the current graph as an SVG, r to
reseed the stochastic dilation rounding, and q to quit.`,
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

			m := newExploreModel(newControls(opts.Params(), opts.Seed))
			prog := tea.NewProgram(m, tea.WithAltScreen())
			finalModel, err := prog.Run()
			if err != nil {
				return err
			}

			if fm, ok := finalModel.(exploreModel); ok && fm.saved != "" {
				printSuccess("Saved snapshot")
				printFile(fm.saved)
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
