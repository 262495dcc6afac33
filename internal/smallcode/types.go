// Package smallcode implements the Small (quaternary keypad) keycode
// protocol: messages packed into a fixed 28-bit layout, rendered as 14
// quaternary digits after a prefix key, obscured at the bit level before
// rendering.
package smallcode

import (
	"errors"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// MessageType identifies the kind of Small protocol message.
type MessageType uint8

const (
	AddCreditType   MessageType = 0
	Passthrough     MessageType = 1
	SetCreditType   MessageType = 2
	MaintenanceTest MessageType = 3
)

func (t MessageType) String() string {
	switch t {
	case AddCreditType:
		return "ADD_CREDIT"
	case Passthrough:
		return "PASSTHROUGH"
	case SetCreditType:
		return "SET_CREDIT"
	case MaintenanceTest:
		return "MAINTENANCE_TEST"
	default:
		return fmt.Sprintf("MessageType(%d)", uint8(t))
	}
}

// MaintenanceType selects which maintenance action a MAINTENANCE_TEST
// message (with the body's MSB set) requests.
type MaintenanceType uint8

const (
	WipeState0 MaintenanceType = 0
	WipeState1 MaintenanceType = 1
	WipeIDsAll MaintenanceType = 2
)

// TestType selects which diagnostic action a MAINTENANCE_TEST message
// (with the body's MSB clear) requests.
type TestType uint8

const (
	ShortTest TestType = 0
	OQCTest   TestType = 1
)

// CustomCommandType enumerates the SET_CREDIT increment_id values reserved
// for custom (non-credit) commands. Values 240-253 are reserved this way;
// only one is currently assigned.
type CustomCommandType uint8

const WipeRestrictedFlag CustomCommandType = 253

// ExtendedType identifies an Extended Small message family, carried inside
// a Passthrough message. idBits is the number of low bits of the message ID
// transmitted in the body (dividing the MAC-collision sub-window).
type ExtendedType struct {
	code   uint8
	idBits uint8
}

// SetCreditWipeRestrictedFlag is the only currently defined Extended Small
// message type: a SET_CREDIT body that also clears the custom "restricted"
// flag.
var SetCreditWipeRestrictedFlag = ExtendedType{code: 0, idBits: 2}

// Sentinel errors.
var (
	ErrOutOfRangeID          = errors.New("smallcode: message ID out of range")
	ErrUnsupportedType       = errors.New("smallcode: unsupported message type")
	ErrOutOfRangeBodyValue   = errors.New("smallcode: body value out of range")
	ErrPossibleCollision     = errors.New("smallcode: possible message collision")
	ErrPayloadWidth          = errors.New("smallcode: passthrough payload must be 26 bits")
	ErrExtendedIDInvalid     = errors.New("smallcode: extended small message ID yields MAC collision")
	ErrInvalidKeyDictEntries = errors.New("smallcode: key dict must map 0-3")

	// ErrInvalidKeyLength matches the key-validation failure every MACed
	// constructor in this package can return.
	ErrInvalidKeyLength = nexusprim.ErrShortKey
)

const passthroughLen = 26
