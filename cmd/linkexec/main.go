// Package main provides the CLI entry point for linkexec.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/linkexec-go/pkg/linkexec"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
	cfg    *linkexec.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linkexec",
		Short: "Turn link-building plans into prioritized execution lists",
		Long: `linkexec reads an SEO outreach plan (keywords, target URLs and per-activity
counts) and expands it into one row per link-building task, sorted by activity
priority, in an "Execution List" sheet.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newGenerateCmd(), newTemplateCmd(), newServeCmd())
	return rootCmd
}

// setup loads the config and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath == "" {
		cfg = linkexec.DefaultConfig()
		return nil
	}
	cfg, err = linkexec.LoadConfig(configPath)
	return err
}
