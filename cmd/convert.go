// =============================================================================
// UPN to EPC Converter - Convert Command
// =============================================================================
//
// COMMAND USAGE:
//   upn2epc convert [flags]
//
// FLAGS:
//   --file         : Read the UPN payload from a file instead of stdin
//   --lang         : Language of error messages (en, sl)
//   --show-record  : Print the decoded UPN record as YAML to stderr
//
// The EPC payload is printed to stdout exactly as generated, so it can be
// piped into a QR encoder.
// On failure a localized message is printed to stderr and the exit code is 1.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fklezin/qr.upn/internal/converter"
	"github.com/fklezin/qr.upn/internal/messages"
	"github.com/fklezin/qr.upn/internal/types"
)

var (
	convertFile string
	convertLang string
	showRecord  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single UPN QR payload to an EPC QR payload",
	Long: `The convert command reads the text of one UPN QR code from a file or from
stdin and prints the matching EPC QR payload.

Advisory findings (for example a bad IBAN checksum) are logged as warnings
and do not stop the conversion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFile, "file", "f", "", "Path to the UPN payload (default stdin)")
	convertCmd.Flags().StringVar(&convertLang, "lang", "", "Language of error messages: en, sl (default from config)")
	convertCmd.Flags().BoolVar(&showRecord, "show-record", false, "Print the decoded UPN record as YAML")
}

func runConvert(cmd *cobra.Command) error {
	raw, err := readPayload(cmd.InOrStdin(), convertFile)
	if err != nil {
		return err
	}

	lang := messages.ParseLang(mainConfig.Language)
	if convertLang != "" {
		lang = messages.ParseLang(convertLang)
	}

	opts := converter.OptionsFromConfig(mainConfig)
	outcome, err := converter.ConvertWith(raw, opts.Validator)
	if err != nil {
		logger.Debug().Str("kind", types.KindOf(err).String()).Err(err).Msg("conversion failed")
		fmt.Fprintln(cmd.ErrOrStderr(), messages.For(err, lang))
		return errReported
	}

	for _, w := range outcome.Warnings {
		logger.Warn().Str("rule", w.Rule).Str("field", w.Field).Msg(w.Message)
	}

	if showRecord {
		data, err := yaml.Marshal(outcome.Record.Fields())
		if err != nil {
			return fmt.Errorf("failed to render record: %w", err)
		}
		fmt.Fprint(cmd.ErrOrStderr(), string(data))
	}

	_, err = io.WriteString(cmd.OutOrStdout(), outcome.Payload)
	return err
}

// readPayload reads from path, or from stdin when path is empty or "-".
func readPayload(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
