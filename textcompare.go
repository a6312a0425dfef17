package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"stormlightlabs.org/textcompare/app"
	"stormlightlabs.org/textcompare/textdiff"
)

var outPatch string

// main is the entry point of the application.
// It sets up the root cobra command, flags, and configuration, then executes the command.
func main() {
	log.SetLevel(log.InfoLevel)

	var rootCmd = &cobra.Command{
		Use:   "textcompare <left> <right>",
		Short: "Compare two texts side by side",
		Long: "Side-by-side text comparison with inline highlighting and change navigation.\n\n" +
			"Each side is a file path, - for standard input, or git:<rev>:<path> for a file at a git revision.",
		Args: cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool(app.KeyVerbose) {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: run,
	}

	var patchCmd = &cobra.Command{
		Use:   "patch <left> <right>",
		Short: "Print a unified patch between two texts",
		Args:  cobra.ExactArgs(2),
		RunE:  runPatch,
	}

	var formatCmd = &cobra.Command{
		Use:   "format <file>",
		Short: "Print a text after the formatting pass selected by --format",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormat,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(app.KeyMode, textdiff.ModeLines.String(), "Inline comparison unit (lines, chars, words, sentences)")
	flags.Bool(app.KeyIgnoreCase, false, "Treat lines differing only by case as equal")
	flags.Bool(app.KeyIgnoreWhitespace, false, "Treat lines differing only by whitespace as equal")
	flags.Int(app.KeyContext, textdiff.DefaultContextSize, "Unchanged lines of context around each patch hunk")
	flags.String(app.KeyFormat, textdiff.FormatPlain, "Input format (plain, json, sql, or a language name for highlighting)")
	flags.Bool(app.KeySyntaxHighlighting, true, "Enable syntax highlighting")
	flags.Int(app.KeyWidth, 120, "Output width in non-interactive mode")
	flags.Bool(app.KeyLogComparisons, false, "Append a JSON line per comparison to a log in the config directory")
	flags.Bool(app.KeyVerbose, false, "Enable debug logging")
	rootCmd.Flags().Bool(app.KeyNonInteractive, false, "Skip TUI and print the comparison")
	patchCmd.Flags().StringVar(&outPatch, "out", "", "Write the patch to this file instead of stdout")

	for _, key := range []string{
		app.KeyMode, app.KeyIgnoreCase, app.KeyIgnoreWhitespace, app.KeyContext, app.KeyFormat,
		app.KeySyntaxHighlighting, app.KeyWidth, app.KeyLogComparisons, app.KeyVerbose,
	} {
		viper.BindPFlag(key, flags.Lookup(key))
	}
	viper.BindPFlag(app.KeyNonInteractive, rootCmd.Flags().Lookup(app.KeyNonInteractive))

	rootCmd.AddCommand(patchCmd, formatCmd)

	if err := app.SetupConfig(); err != nil {
		log.Error("Error setting up config", "error", err)
	}

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// readSources loads both sides of a comparison.
func readSources(leftArg, rightArg string) (app.Source, app.Source, error) {
	if leftArg == "-" && rightArg == "-" {
		return app.Source{}, app.Source{}, fmt.Errorf("only one side can be read from standard input")
	}

	left, err := app.ReadSource(leftArg)
	if err != nil {
		return app.Source{}, app.Source{}, err
	}

	right, err := app.ReadSource(rightArg)
	if err != nil {
		return app.Source{}, app.Source{}, err
	}

	return left, right, nil
}

// openLogger returns the comparison log when --log-comparisons is set, and nil otherwise.
func openLogger() *app.ComparisonLogger {
	if !viper.GetBool(app.KeyLogComparisons) {
		return nil
	}

	logger, err := app.NewComparisonLogger()
	if err != nil {
		log.Warn("Comparison log disabled", "error", err)
		return nil
	}

	log.Debug("Logging comparisons", "file", logger.LogPath(), "session", logger.Session())
	return logger
}

// run determines whether to run the application in interactive or non-interactive mode
// based on the `--non-interactive` flag.
func run(cmd *cobra.Command, args []string) error {
	left, right, err := readSources(args[0], args[1])
	if err != nil {
		return err
	}

	logger := openLogger()
	defer logger.Close()

	if viper.GetBool(app.KeyNonInteractive) {
		return runNonInteractive(cmd.OutOrStdout(), left, right, logger)
	}

	return runInteractive(left, right, logger)
}

// runNonInteractive prints the stats line and the side-by-side rows.
func runNonInteractive(w io.Writer, left, right app.Source, logger *app.ComparisonLogger) error {
	format := viper.GetString(app.KeyFormat)

	start := time.Now()
	c := textdiff.Compare(left.Text, right.Text, format, app.LoadOptions())
	logger.LogComparison(left.Name, right.Name, c, time.Since(start))

	_, err := io.WriteString(w, app.RenderReport(c, viper.GetInt(app.KeyWidth), viper.GetBool(app.KeySyntaxHighlighting)))
	return err
}

// runInteractive starts the interactive TUI for the application.
func runInteractive(left, right app.Source, logger *app.ComparisonLogger) error {
	log.Debug("Starting interactive TUI")

	m := app.NewModel(app.Session{
		Left:            left,
		Right:           right,
		Options:         app.LoadOptions(),
		Format:          viper.GetString(app.KeyFormat),
		SyntaxHighlight: viper.GetBool(app.KeySyntaxHighlighting),
		Logger:          logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// runPatch prints or writes the unified patch between two sources.
func runPatch(cmd *cobra.Command, args []string) error {
	left, right, err := readSources(args[0], args[1])
	if err != nil {
		return err
	}

	format := viper.GetString(app.KeyFormat)
	patch, err := textdiff.Unified(left.Name, right.Name,
		textdiff.Format(left.Text, format), textdiff.Format(right.Text, format), app.LoadOptions())
	if err != nil {
		return fmt.Errorf("failed to build patch: %w", err)
	}

	if patch == "" {
		log.Info("Files are identical", "left", left.Name, "right", right.Name)
	}

	if outPatch == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), patch)
		return err
	}

	// Atomic write
	tempFile := outPatch + ".tmp"
	if err := os.WriteFile(tempFile, []byte(patch), 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, outPatch); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to write patch file: %w", err)
	}

	log.Info("Patch written", "file", outPatch)
	return nil
}

// runFormat prints a single source after the formatting pass.
func runFormat(cmd *cobra.Command, args []string) error {
	src, err := app.ReadSource(args[0])
	if err != nil {
		return err
	}

	out := textdiff.Format(src.Text, viper.GetString(app.KeyFormat))
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
