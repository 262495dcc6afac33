// Package nexusprim provides the low-level deterministic primitives shared
// by every keycode protocol variant: the keyed SipHash-2-4 pseudorandom
// function, truncated-decimal MAC rendering, and the fixed-key pseudorandom
// bit generator used for obscuring.
//
// Every function here is pure: no global state, no I/O, no logging. Secret
// key material must never be logged by any caller.
package nexusprim

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dchest/siphash"
)

// KeyLen is the number of key bytes SipHash-2-4 requires.
const KeyLen = 16

// ErrShortKey indicates a caller-provided secret key has fewer than KeyLen
// bytes and cannot be used to derive a SipHash key.
var ErrShortKey = errors.New("nexusprim: secret key shorter than 16 bytes")

// ZeroKey is the fixed all-zero 128-bit key used as the integrity-check key
// for factory messages and as the PRF key for the pseudorandom bit
// generator that backs obscuring. It provides no secrecy; it only
// standardizes a known hash function across every device and server.
var ZeroKey = [KeyLen]byte{}

// Key parses a caller-supplied secret key into the fixed 16-byte form
// SipHash-2-4 requires, taking only the first 16 bytes per the protocol's
// convention of tolerating longer caller key material.
func Key(secretKey []byte) ([KeyLen]byte, error) {
	var key [KeyLen]byte
	if len(secretKey) < KeyLen {
		return key, fmt.Errorf("nexusprim: key has %d bytes: %w", len(secretKey), ErrShortKey)
	}
	copy(key[:], secretKey[:KeyLen])
	return key, nil
}

// Sum64 computes SipHash-2-4(key, msg), treating key as two little-endian
// 64-bit halves per the reference SipHash construction.
func Sum64(key [KeyLen]byte, msg []byte) uint64 {
	k0 := binary.LittleEndian.Uint64(key[0:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])
	return siphash.Hash(k0, k1, msg)
}

// Top12 returns the 12 most-significant bits of a 64-bit SipHash output,
// used as the truncated MAC/auth field for small-protocol and channel
// origin command messages.
func Top12(raw uint64) uint16 {
	return uint16(raw >> 52) //nolint:gosec // G115: shifting 64 bits right by 52 always fits in uint16
}

// TruncatedDecimalDigits formats the low 32 bits of raw as a zero-padded
// decimal string of at least ndigits characters, then returns the
// rightmost ndigits characters. This is NOT equivalent to
// `raw % 10^ndigits`: formatting first and truncating second matches the
// upstream protocol's digit-rendering behavior exactly, including how
// padding interacts with truncation for small ndigits.
func TruncatedDecimalDigits(raw uint64, ndigits int) string {
	v := uint32(raw & 0xFFFFFFFF)
	s := fmt.Sprintf("%0*d", ndigits, v)
	if len(s) <= ndigits {
		return s
	}
	return s[len(s)-ndigits:]
}
