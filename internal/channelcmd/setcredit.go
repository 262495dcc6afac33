package channelcmd

import (
	"github.com/angaza/nexus-keycode-go/internal/smallcode"
)

// setCreditIncrementID maps a day count (or the unlock sentinel) to the
// SET_CREDIT increment_id, reusing the Small protocol's own day-to-body
// mapping since KEYCODE_SET_CREDIT_WIPE_RESTRICTED_FLAG carries the same
// increment_id convention.
func setCreditIncrementID(days int) (uint8, error) {
	if days == KeycodeSetCreditWipeRestrictedFlagUnlock {
		return smallcode.UnlockIncrementID, nil
	}
	return smallcode.SetCreditBody(days)
}
