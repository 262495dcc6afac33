package channelcmd

import "fmt"

// Action names a buildable Channel Origin Command without committing to a
// particular parameter set; Build dispatches to the matching constructor.
type Action uint8

const (
	ActionUnlinkAllAccessories Action = iota
	ActionUnlockAllAccessories
	ActionKeycodeSetCreditWipeRestrictedFlag
	ActionUnlockSpecificAccessory
	ActionUnlinkSpecificAccessory
	ActionLinkAccessoryMode3
)

// BuildParams carries the union of parameters any Action's builder might
// need. Only the fields relevant to the chosen Action are read; Build
// returns ErrInvalidParameters if a required field is missing.
type BuildParams struct {
	ControllerCommandCount uint32
	ControllerSymKey       []byte

	// Days is used by ActionKeycodeSetCreditWipeRestrictedFlag. Pass
	// KeycodeSetCreditWipeRestrictedFlagUnlock to request an unconditional
	// unlock.
	Days int

	// AccessoryASPID is used by the specific-accessory and Link Mode 3
	// actions.
	AccessoryASPID uint64

	// AccessoryCommandCount and AccessorySymKey are used only by
	// ActionLinkAccessoryMode3.
	AccessoryCommandCount uint32
	AccessorySymKey       []byte
}

// Build constructs the Token for the given Action and parameters.
func (a Action) Build(p BuildParams) (*Token, error) {
	if p.ControllerSymKey == nil {
		return nil, fmt.Errorf("channelcmd: %w: missing controller_sym_key", ErrInvalidParameters)
	}

	switch a {
	case ActionUnlinkAllAccessories:
		return UnlinkAllAccessories(p.ControllerCommandCount, p.ControllerSymKey)
	case ActionUnlockAllAccessories:
		return UnlockAllAccessories(p.ControllerCommandCount, p.ControllerSymKey)
	case ActionKeycodeSetCreditWipeRestrictedFlag:
		return KeycodeSetCreditWipeRestrictedFlag(p.Days, p.ControllerCommandCount, p.ControllerSymKey)
	case ActionUnlockSpecificAccessory:
		return UnlockSpecificAccessory(p.AccessoryASPID, p.ControllerCommandCount, p.ControllerSymKey)
	case ActionUnlinkSpecificAccessory:
		return UnlinkSpecificAccessory(p.AccessoryASPID, p.ControllerCommandCount, p.ControllerSymKey)
	case ActionLinkAccessoryMode3:
		if p.AccessorySymKey == nil {
			return nil, fmt.Errorf("channelcmd: %w: missing accessory_sym_key", ErrInvalidParameters)
		}
		return LinkAccessoryMode3(p.AccessoryASPID, p.ControllerCommandCount, p.AccessoryCommandCount, p.AccessorySymKey, p.ControllerSymKey)
	default:
		return nil, fmt.Errorf("channelcmd: %w: unknown action %d", ErrInvalidParameters, a)
	}
}
