package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AllendiaLabs/tcn-visualization/pkg/pipeline"
	"github.com/AllendiaLabs/tcn-visualization/pkg/render"
	"github.com/AllendiaLabs/tcn-visualization/pkg/tcn"
)

// fieldOpts holds the command-line flags for the field command.
type fieldOpts struct {
	kernel int     // taps per convolution kernel (k)
	growth float64 // dilation growth factor per layer (d)
	seed   uint64  // seed for stochastic dilation rounding
	blocks int     // sweep upper bound (L runs from 1 to blocks)
}

// newFieldCmd creates the field command. It sweeps the block count from one
// to the requested depth and tabulates how the receptive field grows, which
// is the quickest way to size a network for a target history length.
func newFieldCmd() *cobra.Command {
	p := tcn.DefaultParams()
	opts := fieldOpts{
		kernel: p.Kernel,
		growth: p.Growth,
		seed:   pipeline.DefaultSeed,
		blocks: tcn.MaxBlocks,
	}

	cmd := &cobra.Command{
		Use:   "field",
		Short: "Tabulate receptive-field growth across block counts",
		Long: `Tabulate how the receptive field grows as convolution blocks stack.

For each block count from 1 up to --blocks, the field command generates the
connectivity graph with the given kernel size and growth factor and reports
the per-layer delay, the measured receptive field, and the graph size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := tcn.Params{Kernel: opts.kernel, Growth: opts.growth, Blocks: opts.blocks}
			if err := params.Validate(); err != nil {
				return err
			}
			return runField(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.kernel, "kernel", "k", opts.kernel, "kernel size (taps per convolution)")
	cmd.Flags().Float64VarP(&opts.growth, "growth", "d", opts.growth, "dilation growth factor per layer")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "seed for stochastic dilation rounding")
	cmd.Flags().IntVarP(&opts.blocks, "blocks", "l", opts.blocks, "sweep block counts from 1 up to this depth")

	return cmd
}

// runField generates one graph per block count and prints the sweep table.
func runField(ctx context.Context, opts fieldOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	rows := make([][]string, 0, opts.blocks)
	for blocks := 1; blocks <= opts.blocks; blocks++ {
		b := tcn.NewBuilder(tcn.NewSource(opts.seed))
		g := b.Generate(opts.kernel, opts.growth, blocks)

		rows = append(rows, []string{
			strconv.Itoa(blocks),
			strconv.Itoa(tcn.Delay(opts.growth, blocks)),
			strconv.Itoa(render.ReceptiveField(g)),
			strconv.Itoa(g.NodeCount()),
			strconv.Itoa(g.EdgeCount()),
		})
	}
	prog.done(fmt.Sprintf("Swept %d block counts", opts.blocks))

	printNewline()
	printKeyValue("kernel", strconv.Itoa(opts.kernel))
	printKeyValue("growth", fmt.Sprintf("%.1f", opts.growth))
	printKeyValue("seed", strconv.FormatUint(opts.seed, 10))

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Blocks", "Delay", "Field", "Nodes", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return StyleNumber.PaddingLeft(1).PaddingRight(1)
			}
			return StyleValue.PaddingLeft(1).PaddingRight(1)
		})
	fmt.Println(t)

	return nil
}
