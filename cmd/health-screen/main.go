package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RahulAnswer/health-app/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "health-screen",
		Short:         "Lab-report health screening: liver and heart indices from report text",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newScreenCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newPatternsCmd())
	return rootCmd
}

// newLogger builds the process logger: console output in development, JSON
// lines otherwise. CLI commands log to stderr so stdout stays parseable.
func newLogger(cfg *config.Config, out *os.File) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}
