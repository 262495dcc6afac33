package fullcode

import "fmt"

// AddCredit increases a device's enabled credit by the given number of
// hours (0-99999).
func AddCredit(id uint32, hours int, secretKey []byte) (*Message, error) {
	if hours < 0 || hours > 99999 {
		return nil, fmt.Errorf("fullcode: add_credit hours %d: %w", hours, ErrOutOfRangeBodyValue)
	}
	return newBase(id, AddCreditType, fmt.Sprintf("%05d", hours), secretKey, false)
}

// SetCredit sets a device's enabled credit to the given number of hours
// (0-99999).
func SetCredit(id uint32, hours int, secretKey []byte) (*Message, error) {
	if hours < 0 || hours > 99999 {
		return nil, fmt.Errorf("fullcode: set_credit hours %d: %w", hours, ErrOutOfRangeBodyValue)
	}
	return newBase(id, SetCreditType, fmt.Sprintf("%05d", hours), secretKey, false)
}

// Unlock unconditionally unlocks a device via SET_CREDIT with the reserved
// "unlock" hours sentinel value.
func Unlock(id uint32, secretKey []byte) (*Message, error) {
	return newBase(id, SetCreditType, fmt.Sprintf("%05d", unlockHours), secretKey, false)
}

// Reserved is unimplemented in every known protocol revision; present only
// so callers dispatching on message type by name get a typed error instead
// of a missing symbol.
func Reserved(uint32, int, []byte) (*Message, error) {
	return nil, ErrReservedUnsupported
}

// WipeState induces the device to wipe state according to the given target
// flags.
func WipeState(id uint32, flag WipeFlag, secretKey []byte) (*Message, error) {
	switch flag {
	case WipeTargetFlags0, WipeTargetFlags1, WipeIDsAll, WipeRestrictedFlag:
	default:
		return nil, fmt.Errorf("fullcode: wipe flag %v: %w", flag, ErrOutOfRangeBodyValue)
	}
	body := fmt.Sprintf("%01d%04d", 0, uint8(flag))
	return newBase(id, WipeStateType, body, secretKey, false)
}
