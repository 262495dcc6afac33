// Package commands implements the nexuskeycodectl CLI subcommands.
package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Sentinel CLI validation errors. Secret keys MUST be validated as 32
// lowercase hex characters before decoding, and mismatched
// type/parameter combinations MUST reject with a non-zero exit code.
var (
	ErrInvalidSecretKeyHex = errors.New("nexuskeycodectl: secret key must be exactly 32 lowercase hex characters")
)

// rootCmd is the top-level cobra command for nexuskeycodectl.
var rootCmd = &cobra.Command{
	Use:   "nexuskeycodectl",
	Short: "Generate authenticated Nexus keycodes for PAYG devices",
	Long: "nexuskeycodectl builds Full and Small protocol keycodes, and Channel Origin\n" +
		"Command tokens, entirely offline: it is a thin parameter-passing wrapper\n" +
		"around the nexus-keycode-go core codec library.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// parseSecretKeyHex validates and decodes a 32-lowercase-hex-character
// secret key flag into its 16 raw bytes.
func parseSecretKeyHex(s string) ([]byte, error) {
	if len(s) != 32 {
		return nil, fmt.Errorf("nexuskeycodectl: key has %d characters: %w", len(s), ErrInvalidSecretKeyHex)
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return nil, fmt.Errorf("nexuskeycodectl: key contains %q: %w", r, ErrInvalidSecretKeyHex)
		}
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("nexuskeycodectl: decode key: %w", err)
	}
	return key, nil
}
