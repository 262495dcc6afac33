// Package obscure implements the reversible structure-hiding transforms
// applied when rendering Full and Small protocol keycodes. Obscuring adds
// no security; it only hides repeated digit/bit patterns that would
// otherwise stand out visually or invite transcription errors.
package obscure

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// ErrShortDigits indicates a digit string shorter than the 6 trailing MAC
// digits the obscuring transform requires.
var ErrShortDigits = errors.New("obscure: digit string shorter than MAC width")

// macDigitWidth is the number of trailing digits treated as the MAC and
// left untouched by full obscuring.
const macDigitWidth = 6

// FullObscure perturbs the first len(digits)-6 digits of a Full protocol
// digit string, leaving the trailing 6 MAC digits untouched. It is its own
// inverse under sign negation: FullObscure(FullObscure(d, 1), -1) == d.
func FullObscure(digits string, sign int) (string, error) {
	return fullTransform(digits, sign)
}

// FullDeobscure reverses a previous FullObscure pass.
func FullDeobscure(digits string) (string, error) {
	return fullTransform(digits, -1)
}

func fullTransform(digits string, sign int) (string, error) {
	if len(digits) < macDigitWidth {
		return "", fmt.Errorf("obscure: %d digits: %w", len(digits), ErrShortDigits)
	}

	obscuredCount := len(digits) - macDigitWidth
	perturbed := make([]byte, len(digits))
	for i := 0; i < len(digits); i++ {
		perturbed[i] = digits[i] - '0'
	}

	macValue, err := strconv.ParseUint(digits[obscuredCount:], 10, 32)
	if err != nil {
		return "", fmt.Errorf("obscure: parse MAC digits %q: %w", digits[obscuredCount:], err)
	}

	var seed [4]byte
	binary.LittleEndian.PutUint32(seed[:], uint32(macValue))
	pr := nexusprim.PseudorandomBits(seed[:], obscuredCount*8)

	for i := 0; i < obscuredCount; i++ {
		v := int(perturbed[i]) + sign*int(pr[i])
		v %= 10
		if v < 0 {
			v += 10
		}
		perturbed[i] = byte(v)
	}

	out := make([]byte, len(digits))
	for i, d := range perturbed {
		out[i] = d + '0'
	}
	return string(out), nil
}
