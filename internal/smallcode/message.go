package smallcode

import (
	"encoding/binary"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
	"github.com/angaza/nexus-keycode-go/internal/obscure"
)

// Bit-field widths of a compressed 28-bit Small protocol message.
const (
	idFieldBits   = 6
	typeFieldBits = 2
	bodyFieldBits = 8
	macFieldBits  = 12
	totalBits     = idFieldBits + typeFieldBits + bodyFieldBits + macFieldBits // 28
)

// Message is an immutable Small protocol keycode message. bits holds the
// 28 significant (unobscured) message bits, right-justified in the low 28
// bits of the word.
type Message struct {
	id          uint32
	messageType MessageType
	body        uint8
	bits        uint32
	passthrough bool
}

func newCredit(id uint32, messageType MessageType, body uint8, secretKey []byte) (*Message, error) {
	key, err := nexusprim.Key(secretKey)
	if err != nil {
		return nil, fmt.Errorf("smallcode: %w", err)
	}

	mac := generateMACBits(id, messageType, body, key)
	compressedID := uint32(id & 0x3F)

	bits := compressedID<<(typeFieldBits+bodyFieldBits+macFieldBits) |
		uint32(messageType)<<(bodyFieldBits+macFieldBits) |
		uint32(body)<<macFieldBits |
		uint32(mac)

	return &Message{id: id, messageType: messageType, body: body, bits: bits}, nil
}

// NewPassthrough wraps a caller-supplied 26-bit opaque payload (app ID bit
// + 25 further bits, interpretation defined by higher-level callers such as
// the Extended Small and Channel Origin Command layers) in a Passthrough
// Small message. No MAC is computed; Passthrough messages are not
// authenticated at this layer.
func NewPassthrough(payload uint32) (*Message, error) {
	if payload >= (1 << passthroughLen) {
		return nil, fmt.Errorf("smallcode: payload %#x: %w", payload, ErrPayloadWidth)
	}

	firstSix := payload >> (passthroughLen - idFieldBits)
	lastTwenty := payload & ((1 << (passthroughLen - idFieldBits)) - 1)

	bits := firstSix<<(typeFieldBits+bodyFieldBits+macFieldBits) |
		uint32(Passthrough)<<(bodyFieldBits+macFieldBits) |
		lastTwenty

	return &Message{messageType: Passthrough, bits: bits, passthrough: true}, nil
}

// generateMACBits computes the 12-bit truncated MAC over a 6-byte struct:
// uint32 id (LE), uint8 message_type, uint8 body.
func generateMACBits(id uint32, messageType MessageType, body uint8, key [nexusprim.KeyLen]byte) uint16 {
	var buf [6]byte
	binary.LittleEndian.PutUint32(buf[0:4], id)
	buf[4] = uint8(messageType)
	buf[5] = body

	raw := nexusprim.Sum64(key, buf[:])
	return nexusprim.Top12(raw)
}

// ID returns the message's (uncompressed) message ID. Always 0 for
// Passthrough and maintenance/test messages.
func (m *Message) ID() uint32 { return m.id }

// Type returns the message's type code.
func (m *Message) Type() MessageType { return m.messageType }

// RenderOptions controls how a Message is rendered into a human-facing
// keycode string.
type RenderOptions struct {
	Prefix    string
	Separator string
	GroupLen  int
	// KeyDict maps the four quaternary digit values (0-3) to the character
	// printed on the keypad for that value. Must contain all of 0-3.
	KeyDict map[int]string
	Obscured bool
}

// DefaultRenderOptions mirrors the upstream default keypad presentation:
// prefix "1", 3-character groups separated by a space, obscured, and the
// default 2/3/4/5 key mapping.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Prefix:    "1",
		Separator: " ",
		GroupLen:  3,
		KeyDict:   map[int]string{0: "2", 1: "3", 2: "4", 3: "5"},
		Obscured:  true,
	}
}

// ToKeycode renders the message as a human-facing keycode string.
func (m *Message) ToKeycode(opts RenderOptions) (string, error) {
	if len(opts.Prefix) < 1 {
		return "", fmt.Errorf("smallcode: prefix is required")
	}
	for k := 0; k < 4; k++ {
		if _, ok := opts.KeyDict[k]; !ok {
			return "", fmt.Errorf("smallcode: key dict missing entry %d: %w", k, ErrInvalidKeyDictEntries)
		}
	}

	bits := m.bits
	if opts.Obscured {
		bits = obscure.SmallObscure(bits)
	}

	digits := bitsToQuaternaryDigits(bits)

	mapped := opts.Prefix
	for _, d := range digits {
		mapped += opts.KeyDict[int(d-'0')]
	}

	groupLen := opts.GroupLen
	if groupLen <= 0 {
		groupLen = 3
	}

	var out string
	for i := 0; i < len(mapped); i += groupLen {
		end := i + groupLen
		if end > len(mapped) {
			end = len(mapped)
		}
		if i > 0 {
			out += opts.Separator
		}
		out += mapped[i:end]
	}

	return out, nil
}

// String renders the message with the default obscured presentation,
// matching the upstream debug representation (SmallMessage.__str__).
func (m *Message) String() string {
	s, err := m.ToKeycode(DefaultRenderOptions())
	if err != nil {
		return fmt.Sprintf("smallcode.Message{bits:%#x}", m.bits)
	}
	return s
}

// bitsToQuaternaryDigits converts the 28 significant bits of a packed
// message into 14 base-4 digit characters, MSB-first, 2 bits per digit.
func bitsToQuaternaryDigits(bits uint32) string {
	out := make([]byte, 0, totalBits/2)
	for shift := totalBits - 2; shift >= 0; shift -= 2 {
		v := (bits >> uint(shift)) & 0x3
		out = append(out, byte('0'+v))
	}
	return string(out)
}
