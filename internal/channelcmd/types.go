// Package channelcmd implements Nexus Channel Origin Commands: short,
// authenticated tokens sent from a backend origin to a Nexus Channel
// controller, either as ASCII digits (embedded in a Full protocol
// Passthrough message) or as a 26-bit Smallpad bitstream (embedded in a
// Small protocol Passthrough message).
package channelcmd

import (
	"errors"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// OriginCommandType is the wire-level type code of a Nexus Channel origin
// command. Types 0-9 are transmissible via keycode; values are fixed by the
// deployed protocol and must never be renumbered.
type OriginCommandType uint8

const (
	GenericControllerAction OriginCommandType = 0
	UnlockAccessory         OriginCommandType = 1
	UnlinkAccessory         OriginCommandType = 2
	LinkAccessoryMode3Type  OriginCommandType = 9
)

// genericActionType is the GenericControllerActionToken sub-type code.
type genericActionType uint16

const (
	genericUnlinkAllAccessories               genericActionType = 0
	genericUnlockAllAccessories               genericActionType = 1
	genericKeycodeSetCreditWipeRestrictedFlag genericActionType = 6
)

// Bearer selects how a Token is carried in a lower-level keycode body.
type Bearer uint8

const (
	// ASCIIDigits supports every origin command type.
	ASCIIDigits Bearer = iota
	// SmallpadBits is experimental and limited to
	// KEYCODE_SET_CREDIT_WIPE_RESTRICTED_FLAG.
	SmallpadBits
)

// Sentinel errors.
var (
	ErrInvalidParameters   = errors.New("channelcmd: invalid or missing parameters for this action")
	ErrUnsupportedOnBearer = errors.New("channelcmd: type not supported on this bearer")
	// ErrInvalidKeyLength matches the key-validation failure every token
	// builder in this package can return.
	ErrInvalidKeyLength = nexusprim.ErrShortKey
)

func (t OriginCommandType) String() string {
	switch t {
	case GenericControllerAction:
		return "GENERIC_CONTROLLER_ACTION"
	case UnlockAccessory:
		return "UNLOCK_ACCESSORY"
	case UnlinkAccessory:
		return "UNLINK_ACCESSORY"
	case LinkAccessoryMode3Type:
		return "LINK_ACCESSORY_MODE_3"
	default:
		return fmt.Sprintf("OriginCommandType(%d)", uint8(t))
	}
}
