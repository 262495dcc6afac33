package fullcode

import (
	"bytes"
	"errors"
	"testing"
)

func deadbeefKey() []byte {
	return bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 4)
}

func TestAddCreditVector(t *testing.T) {
	msg, err := AddCredit(42, 168, deadbeefKey())
	if err != nil {
		t.Fatalf("AddCredit: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "*599 791 493 194 43#"; got != want {
		t.Errorf("AddCredit(42, 168) = %q, want %q", got, want)
	}
}

func TestSetCreditVector(t *testing.T) {
	msg, err := SetCredit(43, 240, deadbeefKey())
	if err != nil {
		t.Fatalf("SetCredit: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "*682 070 357 093 12#"; got != want {
		t.Errorf("SetCredit(43, 240) = %q, want %q", got, want)
	}
}

func TestUnlockVector(t *testing.T) {
	msg, err := Unlock(44, deadbeefKey())
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "*578 396 697 305 45#"; got != want {
		t.Errorf("Unlock(44) = %q, want %q", got, want)
	}
}

func TestWipeStateVector(t *testing.T) {
	msg, err := WipeState(45, WipeIDsAll, deadbeefKey())
	if err != nil {
		t.Fatalf("WipeState: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "*356 107 776 307 38#"; got != want {
		t.Errorf("WipeState(45, WIPE_IDS_ALL) = %q, want %q", got, want)
	}
}

func TestAddCreditRejectsOutOfRangeHours(t *testing.T) {
	if _, err := AddCredit(1, -1, deadbeefKey()); err == nil {
		t.Fatal("expected error for negative hours")
	}
	if _, err := AddCredit(1, 100000, deadbeefKey()); err == nil {
		t.Fatal("expected error for hours above 99999")
	}
}

func TestReservedIsUnsupported(t *testing.T) {
	if _, err := Reserved(0, 0, nil); err == nil {
		t.Fatal("expected ErrReservedUnsupported")
	}
}

func TestShortKeyIsInvalidKeyLength(t *testing.T) {
	_, err := AddCredit(1, 24, make([]byte, 15))
	if !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}
