// =============================================================================
// UPN to EPC Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   upn2epc convert   - Convert a single UPN payload to an EPC payload
//   upn2epc process   - Convert every payload file in the input directory
//   upn2epc version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : conversion core, validation, reports, configuration
//   - pkg/           : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/fklezin/qr.upn/cmd"
)

func main() {
	cmd.Execute()
}
