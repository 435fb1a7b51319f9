// =============================================================================
// UPN to EPC Converter - File Converter
// =============================================================================
//
// This module converts a single UPN payload file. It is the file-level
// wrapper around Convert used by the batch 'process' command.
//
// CONVERSION PIPELINE:
//   1. Read the input file
//   2. Convert the text (empty check, decode, encode, advisory validation)
//   3. Write the EPC payload to the output directory
//   4. Archive the input and output files
//
// CONCURRENCY:
//   Each file is converted in its own goroutine. A Converter owns no shared
//   state; the FileManager only touches paths derived from its own file.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"time"

	"github.com/fklezin/qr.upn/internal/config"
	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/validation"
	"github.com/fklezin/qr.upn/pkg/utils"
	"github.com/rs/zerolog"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated payload file.
	// This is empty if the conversion failed or on a dry run.
	OutputFile string

	// Success indicates whether the conversion succeeded.
	Success bool

	// Error contains the error if the conversion failed.
	Error error

	// Kind classifies Error. It is KindNone for I/O failures.
	Kind types.Kind

	// RecipientName, RecipientIBAN and Amount summarize the payment for
	// reports. Amount is the formatted EPC amount line.
	RecipientName string
	RecipientIBAN string
	Amount        string

	// Warnings are the advisory findings for the record.
	Warnings []validation.Warning

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options controls what a Converter does besides converting.
type Options struct {
	// DryRun converts without writing or archiving anything.
	DryRun bool

	// OutputNameFormat names the generated payload file.
	OutputNameFormat string

	// Validator runs the advisory checks. Nil skips them.
	Validator *validation.Validator
}

// OptionsFromConfig derives Options from the main configuration.
func OptionsFromConfig(cfg *config.MainConfig) Options {
	return Options{
		OutputNameFormat: cfg.OutputNameFormat,
		Validator: validation.NewValidatorWithOptions(validation.Options{
			SkipChecksum:      cfg.Validation.SkipIBANChecksum,
			RequireRemittance: !cfg.Validation.AllowEmptyRemittance,
		}),
	}
}

// Converter handles the conversion of a single file.
type Converter struct {
	path    string
	files   *utils.FileManager
	options Options
	logger  zerolog.Logger
}

// New creates a new Converter for the file at path.
func New(path string, files *utils.FileManager, options Options, logger zerolog.Logger) *Converter {
	return &Converter{
		path:    path,
		files:   files,
		options: options,
		logger:  logger.With().Str("file", path).Logger(),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result.FilePath = c.path
	defer func() { result.ProcessingTime = time.Since(startTime) }()

	// =========================================================================
	// STEP 1: READ INPUT
	// =========================================================================

	data, err := os.ReadFile(c.path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	c.logger.Debug().Int("bytes", len(data)).Msg("read input")

	// =========================================================================
	// STEP 2: CONVERT
	// =========================================================================

	outcome, err := ConvertWith(string(data), c.options.Validator)
	if err != nil {
		result.Error = err
		result.Kind = types.KindOf(err)
		c.logger.Warn().Str("kind", result.Kind.String()).Err(err).Msg("conversion failed")
		return result
	}

	result.RecipientName = outcome.Record.RecipientName()
	result.RecipientIBAN = outcome.Record.RecipientIBAN()
	result.Amount = outcome.EPC.Amount
	result.Warnings = outcome.Warnings

	for _, w := range outcome.Warnings {
		c.logger.Warn().Str("rule", w.Rule).Str("field", w.Field).Msg(w.Message)
	}

	if c.options.DryRun {
		result.Success = true
		c.logger.Info().Str("amount", result.Amount).Msg("converted (dry run)")
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	fileName := utils.GenerateOutputFileName(c.options.OutputNameFormat, map[string]string{
		"name": utils.BaseName(c.path),
	})

	outputPath, err := c.files.WriteOutput(fileName, []byte(outcome.Payload))
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info().Str("output", outputPath).Str("amount", result.Amount).Msg("converted")

	// =========================================================================
	// STEP 4: ARCHIVE FILES
	// =========================================================================

	if err := c.archiveFiles(outputPath); err != nil {
		// The payload is already written; archival problems are not fatal.
		c.logger.Warn().Err(err).Msg("failed to archive files")
	}

	result.Success = true
	return result
}

// archiveFiles moves the input and copies the output into the archives.
func (c *Converter) archiveFiles(outputPath string) error {
	if _, err := c.files.ArchiveInputFile(c.path); err != nil {
		return fmt.Errorf("failed to archive input file: %w", err)
	}
	if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
		return fmt.Errorf("failed to archive output file: %w", err)
	}
	return nil
}
