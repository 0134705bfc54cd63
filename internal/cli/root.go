package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Simplici0/batchcost/internal/config"
	"github.com/Simplici0/batchcost/internal/logger"
	"github.com/Simplici0/batchcost/internal/pricing"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// options are shared by every subcommand.
type options struct {
	debug          bool
	riskConfigPath string
	log            *slog.Logger
}

func (o *options) riskConfig() (pricing.RiskConfig, error) {
	return config.LoadRiskConfig(o.riskConfigPath)
}

// NewRootCmd builds the batchcost command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "batchcost",
		Short:        "batchcost: price a production batch from its costs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if opts.debug {
				level = "debug"
			}
			opts.log = logger.New(logger.Config{Level: level, Out: cmd.ErrOrStderr()})
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&opts.riskConfigPath, "risk-config", os.Getenv("RISK_CONFIG"), "YAML file with risk thresholds and recommendations")

	cmd.AddCommand(
		calcCmd(opts),
		overheadCmd(),
		laborCmd(),
		compareCmd(opts),
	)
	return cmd
}
