package obscure

import "testing"

func TestFullObscureRoundTrip(t *testing.T) {
	cases := []string{
		"00000000000000",
		"59979149319443",
		"12345678901234",
	}
	for _, digits := range cases {
		obscured, err := FullObscure(digits, 1)
		if err != nil {
			t.Fatalf("FullObscure(%q): %v", digits, err)
		}
		back, err := FullDeobscure(obscured)
		if err != nil {
			t.Fatalf("FullDeobscure(%q): %v", obscured, err)
		}
		if back != digits {
			t.Errorf("round trip: got %q, want %q", back, digits)
		}
	}
}

func TestFullObscurePreservesMACDigits(t *testing.T) {
	digits := "59979149319443"
	obscured, err := FullObscure(digits, 1)
	if err != nil {
		t.Fatalf("FullObscure: %v", err)
	}
	wantMAC := digits[len(digits)-macDigitWidth:]
	gotMAC := obscured[len(obscured)-macDigitWidth:]
	if gotMAC != wantMAC {
		t.Errorf("MAC digits changed by obscuring: got %q, want %q", gotMAC, wantMAC)
	}
}

func TestFullObscureRejectsShortDigits(t *testing.T) {
	if _, err := FullObscure("123", 1); err == nil {
		t.Fatal("expected error for a digit string shorter than the MAC width")
	}
}
