// Package fullcode implements the Full (decimal keypad) keycode protocol:
// 14-digit activation messages and short factory-only messages, each
// optionally obscured before rendering as a human-entered keycode.
package fullcode

import (
	"errors"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// MessageType identifies the kind of Full protocol message.
type MessageType uint8

// Full protocol message types. Values match the wire-level type digit
// prepended to every non-factory activation message header.
const (
	AddCreditType    MessageType = 0
	SetCreditType    MessageType = 1
	WipeStateType    MessageType = 2
	reservedType3    MessageType = 3
	FactoryAllowTest MessageType = 4
	FactoryOQCTest   MessageType = 5
	FactoryDisplayID MessageType = 6
	reservedType7    MessageType = 7
	PassthroughCmd   MessageType = 8
)

func (t MessageType) String() string {
	switch t {
	case AddCreditType:
		return "ADD_CREDIT"
	case SetCreditType:
		return "SET_CREDIT"
	case WipeStateType:
		return "WIPE_STATE"
	case FactoryAllowTest:
		return "FACTORY_ALLOW_TEST"
	case FactoryOQCTest:
		return "FACTORY_OQC_TEST"
	case FactoryDisplayID:
		return "FACTORY_DISPLAY_PAYG_ID"
	case PassthroughCmd:
		return "PASSTHROUGH_COMMAND"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// WipeFlag selects what state a WIPE_STATE message clears on the device.
type WipeFlag uint8

// Wipe target flags for WIPE_STATE messages.
const (
	// WipeTargetFlags0 wipes device state, except the received-messages bitmask.
	WipeTargetFlags0 WipeFlag = 0
	// WipeTargetFlags1 wipes device state, including the received-messages bitmask.
	WipeTargetFlags1 WipeFlag = 1
	// WipeIDsAll clears the device's received-messages bitmask only.
	WipeIDsAll WipeFlag = 2
	// WipeRestrictedFlag clears the device's application-specific "restricted" flag.
	WipeRestrictedFlag WipeFlag = 3
)

func (f WipeFlag) String() string {
	switch f {
	case WipeTargetFlags0:
		return "TARGET_FLAGS_0"
	case WipeTargetFlags1:
		return "TARGET_FLAGS_1"
	case WipeIDsAll:
		return "WIPE_IDS_ALL"
	case WipeRestrictedFlag:
		return "WIPE_RESTRICTED_FLAG"
	default:
		return fmt.Sprintf("WipeFlag(%d)", uint8(f))
	}
}

// PassthroughApplicationID identifies which device application a
// PASSTHROUGH_COMMAND message's body is destined for.
type PassthroughApplicationID uint8

const (
	// ToPAYGUARTPassthrough carries a derived UART security handshake value.
	ToPAYGUARTPassthrough PassthroughApplicationID = 0
	// ChannelOriginCommand carries a Nexus Channel origin command token.
	ChannelOriginCommand PassthroughApplicationID = 1
)

// Sentinel errors returned by this package's constructors and renderers.
var (
	ErrUnsupportedMessageType   = errors.New("fullcode: unsupported message type")
	ErrOutOfRangeID             = errors.New("fullcode: message ID out of range")
	ErrOutOfRangeBodyValue      = errors.New("fullcode: body value out of range")
	ErrPassthroughBodyForbidden = errors.New("fullcode: passthrough body cannot be 13 digits")
	ErrReservedUnsupported      = errors.New("fullcode: reserved message type is not implemented")

	// ErrInvalidKeyLength matches the key-validation failure every MACed
	// constructor in this package can return.
	ErrInvalidKeyLength = nexusprim.ErrShortKey
)

// unlockHours is the sentinel hours value that conveys an unconditional
// unlock via SET_CREDIT.
const unlockHours = 99999
