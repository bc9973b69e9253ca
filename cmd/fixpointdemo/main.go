// Command fixpointdemo drives the fixpoint engine's example scenarios
// (symmetric closure, collatz trajectories, antijoin filtering, and the
// people/triples shared-name query) to completion from the command line,
// logging each round's progress when --verbose is set and printing the final
// result. Run without a subcommand, it drives the config's scenario.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevinawalsh/fixpoint/internal/config"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fixpointdemo",
	Short: "Run fixpoint engine example scenarios to completion",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.TimeKey = ""
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch cfg.Scenario {
		case config.ScenarioCollatz:
			return collatzCmd.RunE(cmd, args)
		case config.ScenarioAntijoin:
			return antijoinCmd.RunE(cmd, args)
		case config.ScenarioPeople:
			return peopleCmd.RunE(cmd, args)
		default:
			return closureCmd.RunE(cmd, args)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a scenario YAML config (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each round of the fixpoint computation")

	rootCmd.AddCommand(closureCmd, collatzCmd, antijoinCmd, peopleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
