// =============================================================================
// UPN to EPC Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (upn2epc)
//   ├── convertCmd (upn2epc convert)
//   ├── processCmd (upn2epc process)
//   └── versionCmd (upn2epc version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// Logs go to stderr so that stdout carries only command output.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fklezin/qr.upn/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// mainConfig is loaded in PersistentPreRunE and shared by every subcommand.
var mainConfig *config.MainConfig

// logger is configured from mainConfig in PersistentPreRunE.
var logger = zerolog.Nop()

// logFile is the open log_file sink, closed in PersistentPostRun.
var logFile *os.File

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "upn2epc",
	Short: "UPN to EPC Converter - Turn Slovenian UPN QR payloads into EPC QR payloads",
	Long: `upn2epc converts the text of a Slovenian UPN QR code into the text of an
EPC QR code (SEPA Credit Transfer), so that a bill scanned from paper can be
paid by any banking app that understands EPC QR.

Key Features:
  - Single payload conversion from a file or stdin
  - Batch conversion of a directory of payload files
  - Advisory checks (IBAN checksum, purpose code, reference model)
  - XLSX and CSV run summaries
  - English and Slovenian error messages

Example Usage:
  upn2epc convert --file bill.txt      # Convert one payload
  zbarimg -q --raw bill.png | upn2epc convert
  upn2epc process                      # Convert every file in the input directory
  upn2epc process --config ./my.yaml   # Use a custom configuration file`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMainConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load main config: %w", err)
		}
		mainConfig = cfg
		closeLogFile()

		var sinks []io.Writer
		if cfg.LogFile != "" {
			f, err := openLogFile(cfg.LogFile)
			if err != nil {
				return err
			}
			logFile = f
			sinks = append(sinks, f)
		}

		logger = newLogger(cmd.ErrOrStderr(), cfg, sinks...)
		logger.Debug().Str("config", cfgFile).Msg("configuration loaded")
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogFile()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the application logger from the configuration. Console
// output goes to w; every extra sink receives plain JSON lines.
func newLogger(w io.Writer, cfg *config.MainConfig, sinks ...io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	var primary io.Writer = w
	if cfg.LogFormat != "json" {
		primary = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	out := primary
	if len(sinks) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{primary}, sinks...)...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	// Nothing may write to a closed sink.
	logger = zerolog.Nop()
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
