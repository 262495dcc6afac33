package nexusprim

import "encoding/binary"

// PseudorandomBits derives outputLenBits of deterministic pseudorandom
// output from seedBytes, using SipHash-2-4 under ZeroKey as a simplified
// HKDF-like expansion (https://tools.ietf.org/html/draft-krawczyk-hkdf-01
// inspired, not a literal implementation of it). Given the same seedBytes,
// it always returns the same bits in the same order.
//
// seedBytes must already be left-zero-padded by the caller to its natural
// byte width (the two callers in this module — Full message obscuring and
// Small message obscuring — each derive a byte-aligned seed in the byte
// order their own wire format requires, one little-endian and one
// big-endian; see obscure.FullObscure and obscure.SmallObscure).
//
// outputLenBits must be a multiple of 8; both callers only ever need
// byte-aligned output.
func PseudorandomBits(seedBytes []byte, outputLenBits int) []byte {
	outputLenBytes := outputLenBits / 8
	numChunks := (outputLenBits + 63) / 64

	out := make([]byte, 0, numChunks*8)
	msg := make([]byte, 1+len(seedBytes))
	copy(msg[1:], seedBytes)

	for i := 0; i < numChunks; i++ {
		msg[0] = byte(i)
		chunk := Sum64(ZeroKey, msg)

		var chunkBytes [8]byte
		binary.LittleEndian.PutUint64(chunkBytes[:], chunk)
		out = append(out, chunkBytes[:]...)
	}

	return out[:outputLenBytes]
}
