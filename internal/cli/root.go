package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AllendiaLabs/tcn-visualization/pkg/buildinfo"
	"github.com/AllendiaLabs/tcn-visualization/pkg/config"
)

// Execute runs the tcnviz CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (render, field,
// explore, view), configures logging based on the --verbose flag, and executes
// the command tree with ctx as the base context. Cancelling ctx stops any
// in-flight command.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "tcnviz",
		Short:        "tcnviz visualizes temporal convolutional receptive fields",
		Long:         `tcnviz is a CLI tool for visualizing how dilated causal convolutions grow a temporal convolutional network's receptive field, making it easier to size kernels, dilation growth, and depth.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().String("config", "", "path to a TOML config file (default: user config dir)")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newFieldCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newViewCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the --config flag and loads settings from disk.
// An empty flag falls back to the per-user default path; a missing file at
// the default path is not an error and yields built-in defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
