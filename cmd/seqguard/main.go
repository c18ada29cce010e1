// seqguard is a small CLI over the bounds-checked sequence primitives:
// sort lines, look keys up in sorted line tables, and split input into
// tokens, with every operation running through the constraint pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seqguard/internal/config"
	"seqguard/pkg/constraint"
)

var (
	// Global flags
	verbose    bool
	configPath string

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "seqguard",
	Short: "Bounds-checked sort, search, and tokenize",
	Long: `seqguard exposes the constraint-checked sequence primitives on the
command line. Every sort, lookup, and split validates its counts and
references first; contract violations are routed to the handler selected
by the violation policy (log, abort, or silent) instead of crashing or
corrupting memory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg = zap.NewDevelopmentConfig()
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		constraint.Set(handlerFor(cfg.Violation.Policy, logger))
		logger.Debug("configured",
			zap.String("violation_policy", cfg.Violation.Policy),
			zap.String("delimiters", cfg.Tokens.Delimiters))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// handlerFor maps a violation policy to the constraint handler the run
// installs.
func handlerFor(policy string, logger *zap.Logger) constraint.Handler {
	switch policy {
	case config.PolicyAbort:
		return constraint.AbortHandler{}
	case config.PolicySilent:
		return constraint.Discard
	default:
		return constraint.NewLogHandler(logger)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seqguard.yaml")
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the seqguard config file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
