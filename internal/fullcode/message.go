package fullcode

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
	"github.com/angaza/nexus-keycode-go/internal/obscure"
)

// fullKeycodeDigits is the total digit length of every non-factory
// (activation) keycode: 1-digit type + 2-digit compressed ID + 5-digit body
// + 6-digit MAC.
const fullKeycodeDigits = 14

// Message is an immutable Full protocol keycode message.
type Message struct {
	fullID      uint32
	messageType MessageType
	body        string
	bodyInt     uint32
	isFactory   bool
	header      string
	mac         string // empty for PASSTHROUGH_COMMAND, which carries no MAC
	hasMAC      bool
}

// newBase constructs the common fields shared by every Full message
// variant. secretKey is only consulted when hasMAC is true.
func newBase(fullID uint32, messageType MessageType, body string, secretKey []byte, isFactory bool) (*Message, error) {
	switch messageType {
	case AddCreditType, SetCreditType, WipeStateType, FactoryAllowTest, FactoryOQCTest, FactoryDisplayID, PassthroughCmd:
	default:
		return nil, fmt.Errorf("fullcode: type %v: %w", messageType, ErrUnsupportedMessageType)
	}

	m := &Message{
		fullID:      fullID,
		messageType: messageType,
		body:        body,
		isFactory:   isFactory,
	}

	if isFactory {
		if body == "" || messageType == PassthroughCmd {
			// PASSTHROUGH_COMMAND carries no MAC, so its body (which may be
			// longer than a uint32 can hold) is never reduced to an integer.
			m.bodyInt = 0
		} else {
			v, err := strconv.ParseUint(body, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fullcode: parse factory body %q: %w", body, err)
			}
			m.bodyInt = uint32(v)
		}
		m.header = strconv.Itoa(int(messageType))
	} else {
		if body == "" {
			return nil, fmt.Errorf("fullcode: empty body: %w", ErrOutOfRangeBodyValue)
		}
		v, err := strconv.ParseUint(body, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fullcode: parse body %q: %w", body, err)
		}
		m.bodyInt = uint32(v)
		m.header = fmt.Sprintf("%d%02d", uint8(messageType), fullID&0x3F)
	}

	if messageType != PassthroughCmd {
		key, err := nexusprim.Key(secretKey)
		if err != nil {
			return nil, fmt.Errorf("fullcode: %w", err)
		}
		m.mac = generateMAC(fullID, messageType, m.bodyInt, key)
		m.hasMAC = true
	}

	return m, nil
}

// generateMAC computes the truncated 6-digit MAC over a 9-byte struct:
// uint32 full_id (LE), uint8 message_type, uint32 body_int (LE).
func generateMAC(fullID uint32, messageType MessageType, bodyInt uint32, key [nexusprim.KeyLen]byte) string {
	var buf [9]byte
	binary.LittleEndian.PutUint32(buf[0:4], fullID)
	buf[4] = uint8(messageType)
	binary.LittleEndian.PutUint32(buf[5:9], bodyInt)

	raw := nexusprim.Sum64(key, buf[:])
	return nexusprim.TruncatedDecimalDigits(raw, 6)
}

// RenderOptions controls how a Message is rendered into a human-facing
// keycode string.
type RenderOptions struct {
	Prefix    string
	Suffix    string
	Separator string
	GroupLen  int
	// Obscured selects whether to apply digit obscuring. nil means "auto":
	// obscured for activation messages, unobscured for factory messages.
	Obscured *bool
}

// DefaultRenderOptions mirrors the upstream default keycode presentation.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Prefix: "*", Suffix: "#", Separator: " ", GroupLen: 3}
}

// ToKeycode renders the message as a human-facing keycode string.
func (m *Message) ToKeycode(opts RenderOptions) (string, error) {
	keycode := m.header + m.body
	if m.hasMAC {
		keycode += m.mac
	}

	obscureIt := opts.Obscured == nil && !m.isFactory
	if opts.Obscured != nil {
		obscureIt = *opts.Obscured
	}

	if obscureIt {
		if len(keycode) != fullKeycodeDigits {
			return "", fmt.Errorf("fullcode: obscured keycode must be %d digits, got %d", fullKeycodeDigits, len(keycode))
		}
		obscured, err := obscure.FullObscure(keycode, 1)
		if err != nil {
			return "", fmt.Errorf("fullcode: obscure: %w", err)
		}
		keycode = obscured
	}

	groupLen := opts.GroupLen
	if groupLen <= 0 {
		groupLen = 3
	}

	var groups []string
	for i := 0; i < len(keycode); i += groupLen {
		end := i + groupLen
		if end > len(keycode) {
			end = len(keycode)
		}
		groups = append(groups, keycode[i:end])
	}

	return opts.Prefix + strings.Join(groups, opts.Separator) + opts.Suffix, nil
}

// String renders the message unobscured, matching the upstream debug
// representation (BaseFullMessage.__str__).
func (m *Message) String() string {
	unobscured := false
	s, err := m.ToKeycode(RenderOptions{Prefix: "*", Suffix: "#", Separator: " ", GroupLen: 3, Obscured: &unobscured})
	if err != nil {
		return fmt.Sprintf("fullcode.Message{header:%q body:%q}", m.header, m.body)
	}
	return s
}

// FullID returns the message's (uncompressed) full message ID.
func (m *Message) FullID() uint32 { return m.fullID }

// Type returns the message's type.
func (m *Message) Type() MessageType { return m.messageType }

// IsFactory reports whether this is a factory (keyless, ID-less) message.
func (m *Message) IsFactory() bool { return m.isFactory }
