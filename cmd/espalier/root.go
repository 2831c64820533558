package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernwald/espalier/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "espalier",
	Short: "Espalier runs resumable customer-support workflows",
	Long: `Espalier drives a multi-stage customer-support workflow: deterministic
abilities run in-process, generative abilities delegate to a completion
backend, and human abilities suspend the run until an answer arrives.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("script", "", "YAML file mapping ability names to scripted backend responses")
}

func loggerFromFlags(cmd *cobra.Command) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelWarn
	}
	return logging.New(level)
}
