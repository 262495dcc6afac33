// Package uartkey derives the UART passthrough security key and numeric
// MAC used to authenticate Nexus Channel traffic tunneled through a Full
// protocol PASSTHROUGH_COMMAND keycode.
package uartkey

import (
	"encoding/binary"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// DeriveUARTKey derives the 16-byte UART security key from a device's
// 16-byte secret key: each 8-byte half is run through SipHash-2-4 under an
// all-zero key, and the two 8-byte digests are concatenated.
func DeriveUARTKey(secretKey []byte) ([nexusprim.KeyLen]byte, error) {
	var out [nexusprim.KeyLen]byte

	key, err := nexusprim.Key(secretKey)
	if err != nil {
		return out, fmt.Errorf("uartkey: %w", err)
	}

	zero, err := nexusprim.Key(nexusprim.ZeroKey[:])
	if err != nil {
		return out, fmt.Errorf("uartkey: %w", err)
	}

	lo := nexusprim.Sum64(zero, key[0:8])
	hi := nexusprim.Sum64(zero, key[8:16])

	binary.LittleEndian.PutUint64(out[0:8], lo)
	binary.LittleEndian.PutUint64(out[8:16], hi)

	return out, nil
}

// NumericBodyAndMAC computes the 6-digit numeric body sent as the
// passthrough_digits of a UART passthrough keycode: a truncated decimal
// MAC over a single zero byte, keyed by the derived UART security key.
func NumericBodyAndMAC(secretKey []byte) (string, error) {
	uartKey, err := DeriveUARTKey(secretKey)
	if err != nil {
		return "", err
	}

	raw := nexusprim.Sum64(uartKey, []byte{0x00})
	return nexusprim.TruncatedDecimalDigits(raw, 6), nil
}
