package fullcode

import "testing"

func TestOQCTestVectorDefaultNumMin(t *testing.T) {
	msg, err := OQCTest(60)
	if err != nil {
		t.Fatalf("OQCTest: %v", err)
	}
	got, err := msg.ToKeycode(DefaultRenderOptions())
	if err != nil {
		t.Fatalf("ToKeycode: %v", err)
	}
	if want := "*500 060 694 509#"; got != want {
		t.Errorf("OQCTest(60) = %q, want %q", got, want)
	}
}

func TestOQCTestRejectsOutOfRangeNumMin(t *testing.T) {
	if _, err := OQCTest(0); err == nil {
		t.Fatal("expected error for num_min 0")
	}
	if _, err := OQCTest(100); err == nil {
		t.Fatal("expected error for num_min 100")
	}
}

func TestFactoryMessagesAreKeyIndependent(t *testing.T) {
	// Factory messages always MAC under the fixed all-zero key: nothing
	// about their rendering can vary with a caller-supplied secret key,
	// because none of these constructors accept one.
	a, err := OQCTest(60)
	if err != nil {
		t.Fatalf("OQCTest: %v", err)
	}
	b, err := OQCTest(60)
	if err != nil {
		t.Fatalf("OQCTest: %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("two OQCTest(60) calls produced different keycodes")
	}
}

func TestPassthroughCommandRejects13DigitBody(t *testing.T) {
	// body = appID digit (1 char) + passthroughDigits; body length 13 would
	// make header(1)+body(13) == 14, colliding with the activation keycode
	// length.
	if _, err := PassthroughCommand(ToPAYGUARTPassthrough, "01234567890"); err != nil {
		t.Fatalf("unexpected error for a non-colliding body: %v", err)
	}
	if _, err := PassthroughCommand(ToPAYGUARTPassthrough, "012345678901"); err == nil {
		t.Fatal("expected ErrPassthroughBodyForbidden for a 13-digit body")
	}
}

func TestPassthroughUARTKeycode(t *testing.T) {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i)
	}
	msg, err := PassthroughUARTKeycode(key)
	if err != nil {
		t.Fatalf("PassthroughUARTKeycode: %v", err)
	}
	if msg.Type() != PassthroughCmd {
		t.Errorf("Type() = %v, want PassthroughCmd", msg.Type())
	}
}
