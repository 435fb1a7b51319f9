// =============================================================================
// UPN to EPC Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts every UPN payload
// file in the input directory.
//
// COMMAND USAGE:
//   upn2epc process [flags]
//
// FLAGS:
//   --dry-run     : Convert and report without writing or archiving anything
//   --file        : Process only this file instead of scanning the input dir
//
// PROCESSING PIPELINE:
//   1. Load configuration (root command)
//   2. Discover payload files in the input directory
//   3. Convert the files concurrently (bounded by max_concurrency)
//   4. Archive converted inputs and outputs
//   5. Write the error log and the run summaries
//
// Ctrl-C stops scheduling new files; files already running finish.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fklezin/qr.upn/internal/converter"
	"github.com/fklezin/qr.upn/internal/messages"
	"github.com/fklezin/qr.upn/internal/report"
	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun converts without writing output files.
var dryRun bool

// processFile restricts the run to a single file.
var processFile string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert every UPN payload file in the input directory",
	Long: `The process command scans the input directory for UPN payload files and
writes one EPC payload file per input to the output directory.

Files are converted concurrently. A failure in one file does not affect the
others unless stop_on_error is set.

On success:
  - The EPC payload is written to the output directory
  - The input is moved to the input archive
  - A copy of the payload goes to the output archive

On error:
  - The input stays in the input directory
  - The failure is recorded in an error log in the reports directory

Every run ends with an XLSX and/or CSV summary in the reports directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runProcess(ctx, cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Convert and report without writing output or archiving",
	)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Process only this file",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(ctx context.Context, cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()
	cfg := mainConfig

	fmt.Fprintln(out, "=== UPN to EPC Converter ===")

	// =========================================================================
	// STEP 1: PREPARE DIRECTORIES
	// =========================================================================

	files := utils.NewFileManager(
		cfg.InputDir,
		cfg.OutputDir,
		cfg.InputArchiveDir,
		cfg.OutputArchiveDir,
		cfg.ReportsDir,
	)
	files.ArchiveOnSuccess = !cfg.SkipArchive
	files.UseTimestampSubdirs = cfg.ArchiveDateSubdirs

	if err := files.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if processFile != "" {
		if !utils.FileExists(processFile) {
			return fmt.Errorf("input file not found: %s", processFile)
		}
		inputFiles = []string{processFile}
	} else {
		found, err := files.DiscoverInputFiles(cfg.InputPattern)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
		inputFiles = found
	}

	if len(inputFiles) == 0 {
		fmt.Fprintf(out, "No files matching %q found in %s.\n", cfg.InputPattern, cfg.InputDir)
		return nil
	}

	fmt.Fprintf(out, "Found %d file(s) to process\n", len(inputFiles))
	logger.Info().Int("files", len(inputFiles)).Bool("dry_run", dryRun).Msg("processing started")

	// =========================================================================
	// STEP 3: CONVERT FILES CONCURRENTLY
	// =========================================================================

	opts := converter.BatchOptions{
		Options:        converter.OptionsFromConfig(cfg),
		MaxConcurrency: cfg.MaxConcurrency,
		StopOnError:    cfg.StopOnError,
	}
	opts.DryRun = dryRun

	results := converter.RunBatch(ctx, inputFiles, files, opts, logger)

	// =========================================================================
	// STEP 4: PRINT RESULTS
	// =========================================================================

	lang := messages.ParseLang(cfg.Language)
	var errorEntries []utils.ErrorLogEntry

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			target := filepath.Base(result.OutputFile)
			if dryRun {
				target = "(dry run)"
			}
			fmt.Fprintf(out, "  ✓ %s -> %s %s\n", name, target, result.Amount)
			continue
		}

		fmt.Fprintf(out, "  ✗ %s: %s\n", name, failureText(result, lang))
		errorEntries = append(errorEntries, errorLogEntry(result, lang))
	}

	// =========================================================================
	// STEP 5: WRITE ERROR LOG AND SUMMARIES
	// =========================================================================

	endTime := time.Now()
	summary := report.FromResults(startTime, endTime, results, lang)
	totals := summary.Totals()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", totals.Files)
	fmt.Fprintf(out, "Successful:      %d\n", totals.Converted)
	fmt.Fprintf(out, "Errors:          %d\n", totals.Failed)
	fmt.Fprintf(out, "Warnings:        %d\n", totals.Warnings)
	fmt.Fprintf(out, "Time elapsed:    %s\n", endTime.Sub(startTime))

	if dryRun {
		return nil
	}

	logPath, err := utils.WriteErrorLog(errorEntries, cfg.ReportsDir)
	if err != nil {
		return err
	}
	if logPath != "" {
		fmt.Fprintf(out, "Error log:       %s\n", logPath)
	}

	written, err := report.Write(summary, cfg.ReportsDir, cfg.ReportFormats)
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	for _, path := range written {
		fmt.Fprintf(out, "Summary:         %s\n", path)
	}

	logger.Info().
		Int("converted", totals.Converted).
		Int("failed", totals.Failed).
		Dur("elapsed", endTime.Sub(startTime)).
		Msg("processing finished")

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// failureText renders a failed result for the console.
func failureText(result converter.Result, lang messages.Lang) string {
	if result.Kind == types.KindNone {
		return result.Error.Error()
	}
	return messages.For(result.Error, lang)
}

// errorLogEntry turns a failed result into an error log entry.
func errorLogEntry(result converter.Result, lang messages.Lang) utils.ErrorLogEntry {
	entry := utils.ErrorLogEntry{
		Timestamp:    time.Now(),
		FileName:     filepath.Base(result.FilePath),
		ErrorType:    result.Kind.String(),
		ErrorMessage: failureText(result, lang),
	}
	if ce, ok := types.AsConversionError(result.Error); ok {
		entry.LineCount = ce.LineCount
		entry.FieldNames = ce.Fields
		entry.FieldValue = ce.Value
	}
	return entry
}
