package channelcmd

import (
	"bytes"
	"errors"
	"testing"
)

func controllerKey() []byte {
	return append(bytes.Repeat([]byte{0xFE}, 8), bytes.Repeat([]byte{0xA2}, 8)...)
}

func accessoryKey() []byte {
	return append(bytes.Repeat([]byte{0xFA}, 8), bytes.Repeat([]byte{0x01}, 8)...)
}

func TestUnlinkAllAccessoriesVector(t *testing.T) {
	token, err := UnlinkAllAccessories(15, controllerKey())
	if err != nil {
		t.Fatalf("UnlinkAllAccessories: %v", err)
	}
	if token.Type() != GenericControllerAction {
		t.Errorf("Type() = %v, want GenericControllerAction", token.Type())
	}
	if token.Bearer() != ASCIIDigits {
		t.Errorf("Bearer() = %v, want ASCIIDigits", token.Bearer())
	}
	got, err := token.ToDigits()
	if err != nil {
		t.Fatalf("ToDigits: %v", err)
	}
	if want := "000018783"; got != want {
		t.Errorf("ToDigits = %q, want %q", got, want)
	}
}

func TestLinkAccessoryMode3Vector(t *testing.T) {
	token, err := LinkAccessoryMode3(0x010294837158, 15, 312, accessoryKey(), controllerKey())
	if err != nil {
		t.Fatalf("LinkAccessoryMode3: %v", err)
	}
	got, err := token.ToDigits()
	if err != nil {
		t.Fatalf("ToDigits: %v", err)
	}
	if want := "90445034581275"; got != want {
		t.Errorf("ToDigits = %q, want %q", got, want)
	}
}

func TestKeycodeSetCreditWipeRestrictedFlagUsesSmallpadBearer(t *testing.T) {
	token, err := KeycodeSetCreditWipeRestrictedFlag(30, 15, controllerKey())
	if err != nil {
		t.Fatalf("KeycodeSetCreditWipeRestrictedFlag: %v", err)
	}
	if token.Bearer() != SmallpadBits {
		t.Fatalf("Bearer() = %v, want SmallpadBits", token.Bearer())
	}
	if _, err := token.ToDigits(); err == nil {
		t.Fatal("expected ToDigits to reject a Smallpad-bearer token")
	}
	payload, err := token.SmallpadPayload()
	if err != nil {
		t.Fatalf("SmallpadPayload: %v", err)
	}
	if payload >= 1<<26 {
		t.Errorf("payload %#x exceeds 26 bits", payload)
	}
}

func TestGenericActionRequiresControllerKey(t *testing.T) {
	_, err := UnlinkAllAccessories(1, nil)
	if !errors.Is(err, ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}
