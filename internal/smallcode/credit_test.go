package smallcode

import (
	"bytes"
	"errors"
	"testing"
)

func deadbeefKey() []byte {
	return bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 4)
}

func TestAddCreditVector(t *testing.T) {
	msg, err := AddCredit(42, 7, deadbeefKey())
	if err != nil {
		t.Fatalf("AddCredit: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "135 242 422 455 244"; got != want {
		t.Errorf("AddCredit(42, 7) = %q, want %q", got, want)
	}
}

func TestSetCreditVector(t *testing.T) {
	msg, err := SetCredit(44, 10, deadbeefKey())
	if err != nil {
		t.Fatalf("SetCredit: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "142 522 332 234 533"; got != want {
		t.Errorf("SetCredit(44, 10) = %q, want %q", got, want)
	}
}

func TestUnlockVector(t *testing.T) {
	msg, err := Unlock(45, deadbeefKey())
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "152 323 254 454 322"; got != want {
		t.Errorf("Unlock(45) = %q, want %q", got, want)
	}
}

func TestSetCreditCollisionGuard(t *testing.T) {
	for id := uint32(0); id < 256; id++ {
		if id&0x3F != 63 {
			continue
		}
		if _, err := SetCredit(id, 1, deadbeefKey()); err == nil {
			t.Errorf("SetCredit(%d, 1) should have been rejected as a possible collision", id)
		}
	}
}

func TestSetCreditUnlockBypassesCollisionGuard(t *testing.T) {
	if _, err := SetCreditUnlock(63, deadbeefKey()); err != nil {
		t.Errorf("SetCreditUnlock(63) should bypass the collision guard, got: %v", err)
	}
}

func TestWipeRestrictedFlagCommandBypassesCollisionGuard(t *testing.T) {
	if _, err := WipeRestrictedFlagCommand(63, deadbeefKey()); err != nil {
		t.Errorf("WipeRestrictedFlagCommand(63) should bypass the collision guard, got: %v", err)
	}
}

func TestAddCreditBodyRanges(t *testing.T) {
	cases := []struct {
		days int
		want uint8
	}{
		{days: 1, want: 0},
		{days: 180, want: 179},
		{days: 181, want: 180},
		{days: 184, want: 181},
	}
	for _, c := range cases {
		got, err := AddCreditBody(c.days)
		if err != nil {
			t.Fatalf("AddCreditBody(%d): %v", c.days, err)
		}
		if got != c.want {
			t.Errorf("AddCreditBody(%d) = %d, want %d", c.days, got, c.want)
		}
	}
	if _, err := AddCreditBody(0); err == nil {
		t.Error("expected error for 0 days")
	}
	if _, err := AddCreditBody(MaxAddCreditDays + 1); err == nil {
		t.Error("expected error above MaxAddCreditDays")
	}
}

func TestSetCreditBodyRanges(t *testing.T) {
	cases := []struct {
		days int
		want uint8
	}{
		{days: 0, want: lockBody},
		{days: 1, want: 0},
		{days: 90, want: 89},
		{days: 91, want: 90},
		{days: 960, want: 225 + (960-721)/16},
	}
	for _, c := range cases {
		got, err := SetCreditBody(c.days)
		if err != nil {
			t.Fatalf("SetCreditBody(%d): %v", c.days, err)
		}
		if got != c.want {
			t.Errorf("SetCreditBody(%d) = %d, want %d", c.days, got, c.want)
		}
	}
	if _, err := SetCreditBody(961); err == nil {
		t.Error("expected error above 960 days")
	}
}

func TestShortKeyIsInvalidKeyLength(t *testing.T) {
	_, err := AddCredit(1, 5, make([]byte, 15))
	if !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}

func TestMaintenanceRejectsUnsupportedType(t *testing.T) {
	if _, err := Maintenance(MaintenanceType(99), deadbeefKey()); err == nil {
		t.Fatal("expected error for an unsupported maintenance type")
	}
}

func TestTestMessageUsesFixedKey(t *testing.T) {
	a, err := Test(ShortTest)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	b, err := Test(ShortTest)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("Test(ShortTest) should be deterministic under the fixed test key")
	}
}
