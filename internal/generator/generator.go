// Package generator provides the convenience façade functions used by
// provisioning and QA tooling to build a complete Full protocol keycode in
// one call, without the caller assembling a fullcode.Message or
// channelcmd.Token directly.
package generator

import (
	"errors"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/channelcmd"
	"github.com/angaza/nexus-keycode-go/internal/fullcode"
)

// CreditMessageType selects which credit action CreateFullCreditMessage
// builds.
type CreditMessageType string

const (
	SetCreditMessage CreditMessageType = "SET"
	AddCreditMessage CreditMessageType = "ADD"
	UnlockMessage    CreditMessageType = "UNLOCK"
)

// ErrUnsupportedCreditMessageType is returned for any CreditMessageType
// other than the three defined constants.
var ErrUnsupportedCreditMessageType = errors.New("generator: unsupported credit message type")

// CreateFullCreditMessage builds a complete credit-granting Full keycode.
// hours is ignored (and may be left at zero) when messageType is
// UnlockMessage.
func CreateFullCreditMessage(id uint32, messageType CreditMessageType, secretKey []byte, hours int) (*fullcode.Message, error) {
	switch messageType {
	case SetCreditMessage:
		return fullcode.SetCredit(id, hours, secretKey)
	case AddCreditMessage:
		return fullcode.AddCredit(id, hours, secretKey)
	case UnlockMessage:
		return fullcode.Unlock(id, secretKey)
	default:
		return nil, fmt.Errorf("generator: credit message type %q: %w", messageType, ErrUnsupportedCreditMessageType)
	}
}

// ChannelMessageType selects which Channel Origin Command
// CreateFullChannelMessage builds.
type ChannelMessageType string

const (
	LinkChannelMessage   ChannelMessageType = "LINK"
	UnlinkChannelMessage ChannelMessageType = "UNLINK"
)

// ErrUnsupportedChannelMessageType is returned for any ChannelMessageType
// other than the two defined constants.
var ErrUnsupportedChannelMessageType = errors.New("generator: unsupported channel message type")

// ChannelMessageParams carries the parameters CreateFullChannelMessage
// needs, the union of what LinkChannelMessage and UnlinkChannelMessage each
// require.
type ChannelMessageParams struct {
	ControllerCommandCount uint32
	ControllerSymKey       []byte

	// AccessoryCommandCount and AccessorySymKey, and AccessoryASPID, are
	// required only for LinkChannelMessage: Link Mode 3 authenticates a
	// specific accessory's own broadcast challenge, so unlike
	// unlink-all-accessories (which targets every linked accessory
	// generically) it cannot omit which accessory it addresses.
	AccessoryASPID        uint64
	AccessoryCommandCount uint32
	AccessorySymKey       []byte
}

// CreateFullChannelMessage builds a complete Full keycode carrying a
// Channel Origin Command token over the ASCII-digit bearer.
func CreateFullChannelMessage(messageType ChannelMessageType, params ChannelMessageParams) (*fullcode.Message, error) {
	var (
		token *channelcmd.Token
		err   error
	)

	switch messageType {
	case LinkChannelMessage:
		if params.AccessorySymKey == nil {
			return nil, fmt.Errorf("generator: %w: link requires accessory_sym_key", channelcmd.ErrInvalidParameters)
		}
		token, err = channelcmd.LinkAccessoryMode3(
			params.AccessoryASPID,
			params.ControllerCommandCount,
			params.AccessoryCommandCount,
			params.AccessorySymKey,
			params.ControllerSymKey,
		)
	case UnlinkChannelMessage:
		token, err = channelcmd.UnlinkAllAccessories(params.ControllerCommandCount, params.ControllerSymKey)
	default:
		return nil, fmt.Errorf("generator: channel message type %q: %w", messageType, ErrUnsupportedChannelMessageType)
	}
	if err != nil {
		return nil, err
	}

	return fullcode.PassthroughChannelOriginCommand(token)
}
