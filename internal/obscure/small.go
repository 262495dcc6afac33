package obscure

import (
	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// smallMessageBits is the fixed size, in bits, of a compressed Small
// protocol message (6-bit ID + 2-bit type + 8-bit body + 12-bit MAC, or the
// equivalent 6+2+20 Passthrough layout).
const smallMessageBits = 28

// smallMACBits is the width, in bits, of the trailing MAC/auth field left
// untouched by Small protocol obscuring.
const smallMACBits = 12

// smallBodyBits is the width, in bits, of the leading portion XOR-obscured
// against the pseudorandom stream derived from the MAC.
const smallBodyBits = smallMessageBits - smallMACBits

// SmallObscure obscures (or deobscures — the transform is its own inverse)
// a packed 28-bit Small protocol message. msg holds the 28 significant bits
// right-justified in the low 28 bits of the uint32.
//
// The top 16 bits (message ID + type + body) are XORed against a
// pseudorandom stream keyed on the trailing 12-bit MAC; the MAC bits
// themselves are never modified.
func SmallObscure(msg uint32) uint32 {
	body := (msg >> smallMACBits) & ((1 << smallBodyBits) - 1)
	mac := msg & ((1 << smallMACBits) - 1)

	// The MAC occupies the low 12 bits of the 28-bit message; left-zero-pad
	// to the next byte boundary (16 bits) and render big-endian, matching
	// the original bit order of an MSB-first 12-bit field.
	seed := [2]byte{byte(mac >> 8), byte(mac)}
	pr := nexusprim.PseudorandomBits(seed[:], smallBodyBits)

	prValue := uint32(pr[0])<<8 | uint32(pr[1])
	obscuredBody := body ^ prValue

	return (obscuredBody << smallMACBits) | mac
}
