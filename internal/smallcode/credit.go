package smallcode

import "fmt"

// MaxAddCreditDays is the largest number of days AddCreditBody accepts.
const MaxAddCreditDays = 405

const coarseDaysPerIncrement = 3

// UnlockIncrementID is the reserved increment_id meaning "unconditionally
// unlock", shared by ADD_CREDIT, SET_CREDIT, and anything that reuses the
// SET_CREDIT body convention (such as Channel Origin Commands).
const UnlockIncrementID = 255

const unlockBody = UnlockIncrementID

// lockBody is the reserved SET_CREDIT increment_id meaning "lock device".
const lockBody = 254

// AddCreditBody maps a day count to the ADD_CREDIT increment_id: 1:1 below
// 181 days, then coarsened to 3-day steps up to MaxAddCreditDays.
func AddCreditBody(days int) (uint8, error) {
	switch {
	case days >= 1 && days <= 180:
		return uint8(days - 1), nil
	case days >= 181 && days <= MaxAddCreditDays:
		return uint8(((days-181)/coarseDaysPerIncrement) + 180), nil
	default:
		return 0, fmt.Errorf("smallcode: add_credit days %d: %w", days, ErrOutOfRangeBodyValue)
	}
}

// AddCredit increases a device's enabled credit by the given number of
// days (see AddCreditBody for the accepted range and coarsening rule).
func AddCredit(id uint32, days int, secretKey []byte) (*Message, error) {
	body, err := AddCreditBody(days)
	if err != nil {
		return nil, err
	}
	return newCredit(id, AddCreditType, body, secretKey)
}

// Unlock unconditionally unlocks a device via ADD_CREDIT with the reserved
// "unlock" increment_id.
func Unlock(id uint32, secretKey []byte) (*Message, error) {
	return newCredit(id, AddCreditType, unlockBody, secretKey)
}

// SetCreditBody maps a day count to the SET_CREDIT increment_id. days == 0
// locks the device; ranges above 90 days are progressively coarsened.
func SetCreditBody(days int) (uint8, error) {
	switch {
	case days == 0:
		return lockBody, nil
	case days >= 1 && days <= 90:
		return uint8(days - 1), nil
	case days >= 91 && days <= 180:
		return uint8((days-91)/2 + 90), nil
	case days >= 181 && days <= 360:
		return uint8((days-181)/4 + 135), nil
	case days >= 361 && days <= 720:
		return uint8((days-361)/8 + 180), nil
	case days >= 721 && days <= 960:
		return uint8((days-721)/16 + 225), nil
	default:
		return 0, fmt.Errorf("smallcode: set_credit days %d: %w", days, ErrOutOfRangeBodyValue)
	}
}

// SetCredit sets a device's enabled credit to the given number of days.
//
// Message IDs whose 6 least-significant bits equal 63, combined with a
// 1-day request, are rejected: older firmware interprets such a message as
// a legacy test code, which would otherwise collide with this SET_CREDIT
// message. Callers hitting this error should retry with id+1.
func SetCredit(id uint32, days int, secretKey []byte) (*Message, error) {
	if id&0x3F == 63 && days == 1 {
		return nil, fmt.Errorf("smallcode: id %d days %d: %w", id, days, ErrPossibleCollision)
	}
	body, err := SetCreditBody(days)
	if err != nil {
		return nil, err
	}
	return newCredit(id, SetCreditType, body, secretKey)
}

// SetCreditUnlock unconditionally unlocks a device via SET_CREDIT with the
// reserved "unlock" increment_id. Unlike SetCredit, it bypasses the
// collision guard: the reserved increment_id can never collide with the
// legacy test code it protects against.
func SetCreditUnlock(id uint32, secretKey []byte) (*Message, error) {
	return newCredit(id, SetCreditType, unlockBody, secretKey)
}

// WipeRestrictedFlagCommand builds the custom SET_CREDIT-typed command that
// clears a device's application-specific "restricted" flag without
// otherwise changing credit state. It bypasses SetCredit's collision guard,
// matching the upstream implementation (custom commands construct the base
// message directly rather than going through SetCredit's constructor).
func WipeRestrictedFlagCommand(id uint32, secretKey []byte) (*Message, error) {
	return newCredit(id, SetCreditType, uint8(WipeRestrictedFlag), secretKey)
}

// Maintenance builds a maintenance action message. The body's MSB is always
// set to distinguish maintenance actions from diagnostic Test messages.
func Maintenance(maintenanceType MaintenanceType, secretKey []byte) (*Message, error) {
	switch maintenanceType {
	case WipeState0, WipeState1, WipeIDsAll:
	default:
		return nil, fmt.Errorf("smallcode: maintenance type %d: %w", uint8(maintenanceType), ErrUnsupportedType)
	}
	body := uint8(maintenanceType) | (1 << 7)
	return newCredit(0, MaintenanceTest, body, secretKey)
}

// fixedTestKey is the all-0xFF key used to MAC diagnostic Test messages,
// which are not addressed to any specific device.
var fixedTestKey = func() []byte {
	k := make([]byte, 16)
	for i := range k {
		k[i] = 0xFF
	}
	return k
}()

// Test builds a diagnostic Test message, MACed under a fixed key shared by
// every device (these messages are not device-specific).
func Test(testType TestType) (*Message, error) {
	switch testType {
	case ShortTest, OQCTest:
	default:
		return nil, fmt.Errorf("smallcode: test type %d: %w", uint8(testType), ErrUnsupportedType)
	}
	return newCredit(0, MaintenanceTest, uint8(testType), fixedTestKey)
}
