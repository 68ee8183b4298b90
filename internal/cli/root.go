// Package cli provides the command-line interface for the code-context
// condenser.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/welf/code-context/internal/processor"
)

const version = "0.1.0"

// Execute creates and runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var config Config

	cmd := &cobra.Command{
		Use:   "code-context <input-path>",
		Short: "Condense Rust sources into compact context files",
		Long: `code-context parses Rust source files and rewrites them with test-only
code removed, documentation normalized and, on request, function bodies
and doc comments stripped. Signatures, types and string-building bodies
are preserved so the output stays useful as context for review and
analysis tools.`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InputPath = args[0]
			return Condense(cmd.OutOrStdout(), &config)
		},
	}

	cmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o", "", "Output directory name for directory inputs")
	cmd.Flags().BoolVar(&config.NoComments, "no-comments", false, "Strip documentation comments")
	cmd.Flags().BoolVar(&config.NoFunctionBodies, "no-function-bodies", false, "Strip function bodies")
	cmd.Flags().BoolVar(&config.NoStats, "no-stats", false, "Do not print processing statistics")
	cmd.Flags().BoolVar(&config.DryRun, "dry-run", false, "Process without writing output files")
	cmd.Flags().BoolVar(&config.SingleFile, "single-file", false, "Combine directory output into one file")
	cmd.Flags().BoolVar(&config.Quiet, "quiet", false, "Suppress the progress bar")
	cmd.Flags().BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .code-context.yml config file")

	return cmd
}

// Condense merges the configuration layers, runs the processor and prints
// statistics to w.
func Condense(w io.Writer, config *Config) error {
	applyEnv(config)
	if err := loadConfigFile(config); err != nil {
		return err
	}
	if err := validateConfig(config); err != nil {
		return err
	}
	setupLogging(config.Verbose)
	slog.Info("starting code context generation", "input", config.InputPath)

	stats, err := processor.Run(processor.Options{
		InputPath:   config.InputPath,
		OutputDir:   config.OutputDir,
		StripDocs:   config.NoComments,
		StripBodies: config.NoFunctionBodies,
		SingleFile:  config.SingleFile,
		DryRun:      config.DryRun,
		Quiet:       config.Quiet,
	})
	if err != nil {
		return err
	}
	slog.Info("processing complete", "files", stats.FilesProcessed)

	if !config.NoStats {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Processing Statistics:")
		fmt.Fprintf(w, "Files processed: %d\n", stats.FilesProcessed)
		fmt.Fprintf(w, "Total input size: %d bytes\n", stats.InputSize)
		fmt.Fprintf(w, "Total output size: %d bytes\n", stats.OutputSize)
		fmt.Fprintf(w, "Size reduction: %.1f%%\n", stats.ReductionPercent())
	}
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
