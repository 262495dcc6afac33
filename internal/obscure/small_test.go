package obscure

import "testing"

func TestSmallObscureIsSelfInverse(t *testing.T) {
	cases := []uint32{0, 0xFFFFFFF, 0x0F0F0F0, 0x1234567}
	for _, msg := range cases {
		msg &= (1 << smallMessageBits) - 1
		if back := SmallObscure(SmallObscure(msg)); back != msg {
			t.Errorf("SmallObscure(SmallObscure(%#x)) = %#x, want %#x", msg, back, msg)
		}
	}
}

func TestSmallObscurePreservesMACBits(t *testing.T) {
	msg := uint32(0x0ABCDEF)
	obscured := SmallObscure(msg)
	wantMAC := msg & ((1 << smallMACBits) - 1)
	gotMAC := obscured & ((1 << smallMACBits) - 1)
	if gotMAC != wantMAC {
		t.Errorf("MAC bits changed by obscuring: got %#x, want %#x", gotMAC, wantMAC)
	}
}
