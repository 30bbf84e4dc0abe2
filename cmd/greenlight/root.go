package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/greenlight"
	"github.com/arloliu/greenlight/internal/logging"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// newRootCmd builds the greenlight command tree.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "greenlight",
		Short: "Split a traffic-signal cycle into per-lane green times.",
		Long: `greenlight allocates the green time of a signal cycle across lanes ` +
			`in proportion to lane density, with a guaranteed minimum per lane. ` +
			`It can compute a single plan or serve plans over NATS.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAllocateCmd(flags))
	rootCmd.AddCommand(newServeCmd(flags))

	return rootCmd
}

// loadConfig returns the file configuration, or the defaults when no file is given.
func (g *globalFlags) loadConfig() (greenlight.Config, error) {
	if g.configPath == "" {
		return greenlight.DefaultConfig(), nil
	}

	return greenlight.LoadConfig(g.configPath)
}

// newLogger builds a text logger writing to w at the configured level.
func (g *globalFlags) newLogger(w io.Writer) (greenlight.Logger, error) {
	level, err := logging.ParseLevel(g.logLevel)
	if err != nil {
		return nil, err
	}

	return logging.NewText(w, level), nil
}
