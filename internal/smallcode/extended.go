package smallcode

import (
	"encoding/binary"
	"fmt"

	"github.com/angaza/nexus-keycode-go/internal/nexusprim"
)

// Receive window bounds (in message IDs) a device uses when trying to
// resolve which full ID an Extended Small message's truncated ID bits
// refer to.
const (
	receiptWindowBelow = 23
	receiptWindowAbove = 40
)

// ExtendedIDInvalidError reports that the requested message ID would create
// a MAC/auth collision within the receiver's window, and names the next ID
// that would not. Callers should retry with NextValidID rather than assume
// this function silently substituted it.
type ExtendedIDInvalidError struct {
	RequestedID uint32
	NextValidID uint32
}

func (e *ExtendedIDInvalidError) Error() string {
	return fmt.Sprintf("smallcode: id %d yields MAC collision, next valid id is %d", e.RequestedID, e.NextValidID)
}

// Unwrap lets callers match this error with errors.Is(err, ErrExtendedIDInvalid).
func (e *ExtendedIDInvalidError) Unwrap() error { return ErrExtendedIDInvalid }

var _ error = (*ExtendedIDInvalidError)(nil)

// NewExtendedSmall builds an Extended Small message of the given type,
// carried inside a Passthrough Small message, and returns the message ID
// used, which on success is always requestedID. If requestedID collides
// within the receive window it returns an *ExtendedIDInvalidError naming the
// next collision-free ID; if no ID within receiptWindowAbove of requestedID
// is collision-free it returns an error wrapping ErrExtendedIDInvalid.
func NewExtendedSmall(extType ExtendedType, requestedID uint32, days int, secretKey []byte) (*Message, uint32, error) {
	key, err := nexusprim.Key(secretKey)
	if err != nil {
		return nil, 0, fmt.Errorf("smallcode: %w", err)
	}

	var (
		auth  uint16
		found bool
	)
	finalID := requestedID

	for !found && finalID < requestedID+receiptWindowAbove {
		body10, berr := generateSetCreditWipeRestrictedFlagBody(extType, finalID, days)
		if berr != nil {
			return nil, 0, berr
		}

		a, ok := computeAuthWithNoCollisions(finalID, extType, body10, key)
		if ok {
			auth = a
			found = true
		} else {
			finalID++
		}
	}

	if !found {
		return nil, 0, fmt.Errorf("smallcode: no collision-free id in [%d, %d): %w", requestedID, finalID, ErrExtendedIDInvalid)
	}

	if finalID != requestedID {
		return nil, 0, &ExtendedIDInvalidError{RequestedID: requestedID, NextValidID: finalID}
	}

	body10, err := generateSetCreditWipeRestrictedFlagBody(extType, finalID, days)
	if err != nil {
		return nil, 0, err
	}

	payload := uint32(1)<<(passthroughLen-1) |
		uint32(extType.code&0x7)<<(passthroughLen-1-3) |
		uint32(body10&0x3FF)<<macFieldBits |
		uint32(auth&0xFFF)

	msg, err := NewPassthrough(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("smallcode: extended small: %w", err)
	}

	return msg, finalID, nil
}

// generateSetCreditWipeRestrictedFlagBody packs the 10-bit body for a
// SET_CREDIT_WIPE_RESTRICTED_FLAG Extended Small message: 2 MSB bits of the
// truncated message ID, then the 8-bit SET_CREDIT increment_id.
func generateSetCreditWipeRestrictedFlagBody(extType ExtendedType, id uint32, days int) (uint16, error) {
	increment, err := SetCreditBody(days)
	if err != nil {
		return 0, err
	}
	truncated := uint16(id & ((1 << extType.idBits) - 1))
	return truncated<<8 | uint16(increment), nil
}

// computeAuth computes the 12-bit MAC over a 7-byte struct: uint32 full_id
// (LE), uint8 type code, uint16 body (LE, left-zero-padded from 10 bits).
func computeAuth(fullID uint32, typeCode uint8, body10 uint16, key [nexusprim.KeyLen]byte) uint16 {
	var buf [7]byte
	binary.LittleEndian.PutUint32(buf[0:4], fullID)
	buf[4] = typeCode
	binary.LittleEndian.PutUint16(buf[5:7], body10)

	raw := nexusprim.Sum64(key, buf[:])
	return nexusprim.Top12(raw)
}

// computeAuthWithNoCollisions returns the MAC for requestedID, and whether
// it is free of collisions against every other ID in the receive window
// that shares the same transmitted (truncated) ID bits. body10 is fixed
// for the whole scan: every ID in the congruence class transmits the same
// body bits, so the scan checks whether a receiver could confuse them.
func computeAuthWithNoCollisions(requestedID uint32, extType ExtendedType, body10 uint16, key [nexusprim.KeyLen]byte) (uint16, bool) {
	step := int64(1) << extType.idBits
	candidate := computeAuth(requestedID, extType.code, body10, key)

	var minID uint32
	if requestedID > receiptWindowBelow {
		minID = requestedID - receiptWindowBelow
	}
	maxID := requestedID + receiptWindowAbove
	if maxID > 65535 {
		maxID = 65535
	}

	for i := minID; i <= maxID; i++ {
		if (int64(requestedID)-int64(i))%step != 0 {
			continue
		}
		if i == requestedID {
			continue
		}
		if computeAuth(i, extType.code, body10, key) == candidate {
			return 0, false
		}
	}

	return candidate, true
}
