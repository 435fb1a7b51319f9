// =============================================================================
// UPN to EPC Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Settings come from three
// layers, later layers winning:
//   1. Built-in defaults
//   2. The YAML config file (config.yaml by default, optional)
//   3. UPN2EPC_* environment variables, after loading an optional .env file
//
// Only the batch 'process' command needs the directory settings. The
// conversion core itself has no configuration: the formats are fixed.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "UPN2EPC_"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for UPN payload text files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one EPC payload file per converted input.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives inputs after a successful conversion.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every generated payload.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// ReportsDir receives the run summaries and error logs.
	// Default: "./reports"
	ReportsDir string `yaml:"reports_dir"`

	// =========================================================================
	// INPUT / OUTPUT SETTINGS
	// =========================================================================

	// InputPattern is the glob matched against file names in InputDir.
	// Default: "*.txt"
	InputPattern string `yaml:"input_pattern"`

	// OutputNameFormat names the generated payload files.
	// Placeholders:
	//   {name}      - input file name without extension
	//   {uuid}      - a random UUID
	//   {timestamp} - current time (YYYYMMDD_HHMMSS)
	// Default: "{name}_{uuid}.epc.txt"
	OutputNameFormat string `yaml:"output_name_format"`

	// SkipArchive leaves inputs in place after conversion.
	SkipArchive bool `yaml:"skip_archive"`

	// ArchiveDateSubdirs files archives under YYYY/MM/DD subdirectories.
	ArchiveDateSubdirs bool `yaml:"archive_date_subdirs"`

	// ReportFormats lists the summary formats to write: "xlsx", "csv".
	// Default: ["xlsx", "csv"]
	ReportFormats []string `yaml:"report_formats"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" for humans or "json" for log shippers.
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// LogFile, when set, receives a JSON copy of every log line in addition
	// to stderr. The file is appended to; its directory is created.
	// Default: "" (stderr only)
	LogFile string `yaml:"log_file"`

	// Language selects the language of user-facing error messages: "en", "sl".
	// Default: "en"
	Language string `yaml:"language"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// StopOnError stops scheduling new files after the first failure.
	StopOnError bool `yaml:"stop_on_error"`

	// Validation tunes the advisory checks.
	Validation ValidationSettings `yaml:"validation"`
}

// ValidationSettings tunes the advisory validation rules.
type ValidationSettings struct {
	// SkipIBANChecksum disables the mod-97 IBAN warning.
	SkipIBANChecksum bool `yaml:"skip_iban_checksum"`

	// AllowEmptyRemittance silences the warning for payloads that carry
	// neither a reference nor a purpose.
	AllowEmptyRemittance bool `yaml:"allow_empty_remittance"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the configuration from a YAML file and the environment.
//
// A missing file is not an error: the defaults and environment are used.
// A file that exists but cannot be parsed is an error.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults and environment only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	if err := applyEnvOverrides(&config); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset option.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.ReportsDir == "" {
		config.ReportsDir = "./reports"
	}
	if config.InputPattern == "" {
		config.InputPattern = "*.txt"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{name}_{uuid}.epc.txt"
	}
	if config.ReportFormats == nil {
		config.ReportFormats = []string{"xlsx", "csv"}
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.Language == "" {
		config.Language = "en"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
}

// validateMainConfig rejects values the rest of the program cannot use.
func validateMainConfig(config *MainConfig) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch config.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	switch config.Language {
	case "en", "sl":
	default:
		return fmt.Errorf("unknown language %q", config.Language)
	}

	for _, format := range config.ReportFormats {
		if format != "xlsx" && format != "csv" {
			return fmt.Errorf("unknown report format %q", format)
		}
	}

	if !strings.Contains(config.OutputNameFormat, "{uuid}") &&
		!strings.Contains(config.OutputNameFormat, "{name}") {
		return fmt.Errorf("output_name_format must contain {name} or {uuid}")
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// applyEnvOverrides copies UPN2EPC_* variables over the file values.
func applyEnvOverrides(config *MainConfig) error {
	strs := map[string]*string{
		"INPUT_DIR":          &config.InputDir,
		"OUTPUT_DIR":         &config.OutputDir,
		"INPUT_ARCHIVE_DIR":  &config.InputArchiveDir,
		"OUTPUT_ARCHIVE_DIR": &config.OutputArchiveDir,
		"REPORTS_DIR":        &config.ReportsDir,
		"INPUT_PATTERN":      &config.InputPattern,
		"OUTPUT_NAME_FORMAT": &config.OutputNameFormat,
		"LOG_LEVEL":          &config.LogLevel,
		"LOG_FORMAT":         &config.LogFormat,
		"LOG_FILE":           &config.LogFile,
		"LANGUAGE":           &config.Language,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"SKIP_ARCHIVE":           &config.SkipArchive,
		"ARCHIVE_DATE_SUBDIRS":   &config.ArchiveDateSubdirs,
		"STOP_ON_ERROR":          &config.StopOnError,
		"SKIP_IBAN_CHECKSUM":     &config.Validation.SkipIBANChecksum,
		"ALLOW_EMPTY_REMITTANCE": &config.Validation.AllowEmptyRemittance,
	}
	for key, dst := range bools {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "MAX_CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_CONCURRENCY: %w", EnvPrefix, err)
		}
		config.MaxConcurrency = n
	}

	if v, ok := os.LookupEnv(EnvPrefix + "REPORT_FORMATS"); ok {
		config.ReportFormats = splitList(v)
	}

	return nil
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
