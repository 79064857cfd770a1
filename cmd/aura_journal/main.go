package main

import (
	"aura_journal/internal/config"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aura_journal",
	Short: "Journaling and mood tracking service",
	Long: `aura_journal stores journal entries and mood check-ins, classifies entries
with an LLM, and keeps streaks, badges and mood analytics up to date.

Configuration comes from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.New()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err = newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
