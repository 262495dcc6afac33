package channelcmd

import (
	"encoding/binary"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// Token is a built Channel Origin Command, ready to be rendered into a
// keycode body via ToDigits. auth is the raw 64-bit SipHash output; each
// bearer truncates it differently at render time.
type Token struct {
	typeCode OriginCommandType
	bearer   Bearer
	auth     uint64
	// asciiBody is the pre-rendered ASCII body (decimal digits), used only
	// when bearer is ASCIIDigits.
	asciiBody string
	// smallpadBody is the pre-packed body bits (width defined per type),
	// used only when bearer is SmallpadBits.
	smallpadBody uint16
	smallpadBits int
}

// Bearer reports how this token is carried.
func (t *Token) Bearer() Bearer { return t.bearer }

// Type reports the origin command type this token carries.
func (t *Token) Type() OriginCommandType { return t.typeCode }

// ToDigits renders the token's ASCII-bearer digit string: type code,
// body, then a 6-digit truncated auth MAC. Valid only when Bearer() ==
// ASCIIDigits; use SmallpadPayload for SmallpadBits tokens.
func (t *Token) ToDigits() (string, error) {
	if t.bearer != ASCIIDigits {
		return "", fmt.Errorf("channelcmd: %w", ErrUnsupportedOnBearer)
	}
	authDigits := nexusprim.TruncatedDecimalDigits(t.auth, 6)
	return fmt.Sprintf("%d%s%s", t.typeCode, t.asciiBody, authDigits), nil
}

// SmallpadPayload renders the token's 26-bit Smallpad payload: a fixed
// app_id=1 marker bit, the type-specific body bits, then the 12 most
// significant bits of auth as the MAC. Valid only when Bearer() ==
// SmallpadBits.
func (t *Token) SmallpadPayload() (uint32, error) {
	if t.bearer != SmallpadBits {
		return 0, fmt.Errorf("channelcmd: %w", ErrUnsupportedOnBearer)
	}
	mac := uint32(nexusprim.Top12(t.auth))
	bodyWidth := uint32(t.smallpadBits)
	payload := uint32(1)<<25 |
		uint32(t.smallpadBody)<<(25-bodyWidth) |
		mac
	return payload, nil
}

// genericControllerActionAuth computes the auth for a
// GenericControllerAction token over a 9-byte struct: uint32
// controllerCommandCount (LE), uint8 origin command type (always 0), uint16
// action type (LE), uint16 typeActionData (LE, 0 if unused).
func genericControllerActionAuth(controllerCommandCount uint32, actionType genericActionType, typeActionData uint16, key [nexusprim.KeyLen]byte) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint32(buf[0:4], controllerCommandCount)
	buf[4] = uint8(GenericControllerAction)
	binary.LittleEndian.PutUint16(buf[5:7], uint16(actionType))
	binary.LittleEndian.PutUint16(buf[7:9], typeActionData)
	return nexusprim.Sum64(key, buf[:])
}

// UnlinkAllAccessories builds a GENERIC_CONTROLLER_ACTION token instructing
// a controller to unlink every accessory it has ever linked.
func UnlinkAllAccessories(controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	return genericASCIIAction(controllerCommandCount, genericUnlinkAllAccessories, controllerSymKey)
}

// UnlockAllAccessories builds a GENERIC_CONTROLLER_ACTION token instructing
// a controller to unlock every accessory it has ever linked.
func UnlockAllAccessories(controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	return genericASCIIAction(controllerCommandCount, genericUnlockAllAccessories, controllerSymKey)
}

func genericASCIIAction(controllerCommandCount uint32, actionType genericActionType, controllerSymKey []byte) (*Token, error) {
	key, err := nexusprim.Key(controllerSymKey)
	if err != nil {
		return nil, fmt.Errorf("channelcmd: %w", err)
	}
	auth := genericControllerActionAuth(controllerCommandCount, actionType, 0, key)
	return &Token{
		typeCode:  GenericControllerAction,
		bearer:    ASCIIDigits,
		auth:      auth,
		asciiBody: fmt.Sprintf("%02d", actionType),
	}, nil
}

// KeycodeSetCreditWipeRestrictedFlagUnlock is the sentinel "unconditionally
// unlock" day count, mirroring the Small protocol SET_CREDIT convention.
const KeycodeSetCreditWipeRestrictedFlagUnlock = -1

// KeycodeSetCreditWipeRestrictedFlag builds the only GENERIC_CONTROLLER_ACTION
// sub-type carried over the Smallpad bearer: a SET_CREDIT body combined with
// clearing the controller's restricted flag. Pass
// KeycodeSetCreditWipeRestrictedFlagUnlock for days to request an
// unconditional unlock instead of a specific day count.
func KeycodeSetCreditWipeRestrictedFlag(days int, controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	increment, err := setCreditIncrementID(days)
	if err != nil {
		return nil, err
	}

	key, err := nexusprim.Key(controllerSymKey)
	if err != nil {
		return nil, fmt.Errorf("channelcmd: %w", err)
	}

	auth := genericControllerActionAuth(controllerCommandCount, genericKeycodeSetCreditWipeRestrictedFlag, uint16(increment), key)

	// body bits: 3-bit controller command data (=0, GENERIC_CONTROLLER_ACTION
	// type code) + 2-bit generic action type id (fixed 0b11) + 8-bit
	// SET_CREDIT increment_id.
	body := uint16(0)<<10 | uint16(0b11)<<8 | uint16(increment)

	return &Token{
		typeCode:     GenericControllerAction,
		bearer:       SmallpadBits,
		auth:         auth,
		smallpadBody: body,
		smallpadBits: 13,
	}, nil
}
