package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"proveit/internal/effects"
	"proveit/internal/logging"
)

var version = "0.1.0-dev"

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proveit",
		Short: "Prove It! - fireworks and the Pythagorean theorem",
		Long: `proveit runs the particle effects that celebrate a finished proof and
checks the equations typed while proving the Pythagorean theorem.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (info, debug, trace)")
	rootCmd.PersistentFlags().String("config", "", "Effects YAML config file")

	rootCmd.AddCommand(
		newFireworksCmd(),
		newTermCmd(),
		newSimulateCmd(),
		newCheckCmd(),
		newLessonCmd(),
		newEffectsCmd(),
	)
	return rootCmd
}

// newLogger builds the leveled logger selected by --log-level.
func newLogger(cmd *cobra.Command, w io.Writer) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, w)
}

// loadConfig reads --config when given and applies key=value overrides.
func loadConfig(cmd *cobra.Command, overrides map[string]string) (effects.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := effects.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = effects.LoadConfig(path); err != nil {
			return effects.Config{}, err
		}
	}
	cfg = cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		return effects.Config{}, err
	}
	return cfg, nil
}
