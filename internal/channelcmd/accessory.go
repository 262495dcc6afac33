package channelcmd

import (
	"encoding/binary"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// specificAccessoryAuth computes the auth for an UNLOCK_ACCESSORY or
// UNLINK_ACCESSORY token over an 11-byte struct: uint32
// controllerCommandCount (LE), uint8 type code, uint16 nexusAuthorityID
// (LE), uint32 nexusDeviceID (LE).
func specificAccessoryAuth(controllerCommandCount uint32, typeCode OriginCommandType, nexusAuthorityID uint16, nexusDeviceID uint32, key [nexusprim.KeyLen]byte) uint64 {
	var buf [11]byte
	binary.LittleEndian.PutUint32(buf[0:4], controllerCommandCount)
	buf[4] = uint8(typeCode)
	binary.LittleEndian.PutUint16(buf[5:7], nexusAuthorityID)
	binary.LittleEndian.PutUint32(buf[7:11], nexusDeviceID)
	return nexusprim.Sum64(key, buf[:])
}

// specificAccessoryToken builds an UNLOCK_ACCESSORY/UNLINK_ACCESSORY token
// addressed to a single accessory identified by its 48-bit ASP ID: the top
// 16 bits are the Nexus authority ID, the low 32 bits are the Nexus device
// ID.
func specificAccessoryToken(typeCode OriginCommandType, accessoryASPID uint64, controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	key, err := nexusprim.Key(controllerSymKey)
	if err != nil {
		return nil, fmt.Errorf("channelcmd: %w", err)
	}

	nexusAuthorityID := uint16((accessoryASPID & 0xFFFF00000000) >> 32)
	nexusDeviceID := uint32(accessoryASPID & 0xFFFFFFFF)

	auth := specificAccessoryAuth(controllerCommandCount, typeCode, nexusAuthorityID, nexusDeviceID, key)

	// Displayed body is a single truncated digit of the device ID, purely
	// for a human to visually confirm which accessory a token targets; it
	// plays no role in the MAC.
	body := fmt.Sprintf("%01d", nexusDeviceID%10)

	return &Token{
		typeCode:  typeCode,
		bearer:    ASCIIDigits,
		auth:      auth,
		asciiBody: body,
	}, nil
}

// UnlockSpecificAccessory builds an UNLOCK_ACCESSORY token addressed to a
// single linked accessory.
func UnlockSpecificAccessory(accessoryASPID uint64, controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	return specificAccessoryToken(UnlockAccessory, accessoryASPID, controllerCommandCount, controllerSymKey)
}

// UnlinkSpecificAccessory builds an UNLINK_ACCESSORY token addressed to a
// single linked accessory.
func UnlinkSpecificAccessory(accessoryASPID uint64, controllerCommandCount uint32, controllerSymKey []byte) (*Token, error) {
	return specificAccessoryToken(UnlinkAccessory, accessoryASPID, controllerCommandCount, controllerSymKey)
}

// ChallengeMode3 computes the inner "challenge" digest an accessory
// verifies during Link Mode 3 linking: a 6-digit truncated SipHash MAC over
// the accessory's own command counter, keyed by the accessory's own secret
// key.
func ChallengeMode3(accessoryCommandCount uint32, accessorySymKey []byte) (string, error) {
	key, err := nexusprim.Key(accessorySymKey)
	if err != nil {
		return "", fmt.Errorf("channelcmd: %w", err)
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], accessoryCommandCount)
	raw := nexusprim.Sum64(key, buf[:])
	return nexusprim.TruncatedDecimalDigits(raw, 6), nil
}

// LinkAccessoryMode3 builds a LINK_ACCESSORY_MODE_3 token: a controller
// replays the accessory's own challenge digest back to it, authenticated
// under the controller's key, to prove it observed the accessory's
// broadcast challenge out-of-band.
func LinkAccessoryMode3(accessoryASPID uint64, controllerCommandCount uint32, accessoryCommandCount uint32, accessorySymKey []byte, controllerSymKey []byte) (*Token, error) {
	accessoryAuthDigits, err := ChallengeMode3(accessoryCommandCount, accessorySymKey)
	if err != nil {
		return nil, err
	}

	var accessoryAuthInt uint32
	if _, err := fmt.Sscanf(accessoryAuthDigits, "%d", &accessoryAuthInt); err != nil {
		return nil, fmt.Errorf("channelcmd: parsing accessory auth digits: %w", err)
	}

	truncAccessoryDeviceID := uint8((accessoryASPID & 0xFFFFFFFF) % 10)

	key, err := nexusprim.Key(controllerSymKey)
	if err != nil {
		return nil, fmt.Errorf("channelcmd: %w", err)
	}

	var buf [10]byte
	binary.LittleEndian.PutUint32(buf[0:4], controllerCommandCount)
	buf[4] = uint8(LinkAccessoryMode3Type)
	buf[5] = truncAccessoryDeviceID
	binary.LittleEndian.PutUint32(buf[6:10], accessoryAuthInt)
	auth := nexusprim.Sum64(key, buf[:])

	body := fmt.Sprintf("%01d%s", truncAccessoryDeviceID, accessoryAuthDigits)

	return &Token{
		typeCode:  LinkAccessoryMode3Type,
		bearer:    ASCIIDigits,
		auth:      auth,
		asciiBody: body,
	}, nil
}
