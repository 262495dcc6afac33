package nexusprim

import "testing"

func TestKeyTruncatesLongerKeys(t *testing.T) {
	short := make([]byte, 16)
	for i := range short {
		short[i] = byte(i)
	}
	long := append(append([]byte{}, short...), 0xFF, 0xFF, 0xFF)

	k1, err := Key(short)
	if err != nil {
		t.Fatalf("Key(short): %v", err)
	}
	k2, err := Key(long)
	if err != nil {
		t.Fatalf("Key(long): %v", err)
	}
	if k1 != k2 {
		t.Fatalf("Key(short) != Key(long): %v != %v", k1, k2)
	}
}

func TestKeyRejectsShortKey(t *testing.T) {
	if _, err := Key(make([]byte, 15)); err == nil {
		t.Fatal("expected error for a 15-byte key")
	}
}

func TestSum64Deterministic(t *testing.T) {
	key, _ := Key(make([]byte, 16))
	msg := []byte("hello")
	if Sum64(key, msg) != Sum64(key, msg) {
		t.Fatal("Sum64 is not deterministic")
	}
}

func TestSum64DiffersOnKeyOrMessage(t *testing.T) {
	k1, _ := Key(make([]byte, 16))
	other := make([]byte, 16)
	other[0] = 1
	k2, _ := Key(other)

	msg := []byte("hello")
	if Sum64(k1, msg) == Sum64(k2, msg) {
		t.Fatal("Sum64 should differ when the key differs")
	}
	if Sum64(k1, msg) == Sum64(k1, []byte("hellp")) {
		t.Fatal("Sum64 should differ when the message differs")
	}
}

func TestTruncatedDecimalDigitsPadsAndTruncates(t *testing.T) {
	cases := []struct {
		raw     uint64
		ndigits int
		want    string
	}{
		{raw: 42, ndigits: 6, want: "000042"},
		{raw: 1234567890, ndigits: 6, want: "567890"},
		{raw: 0, ndigits: 3, want: "000"},
	}
	for _, c := range cases {
		got := TruncatedDecimalDigits(c.raw, c.ndigits)
		if got != c.want {
			t.Errorf("TruncatedDecimalDigits(%d, %d) = %q, want %q", c.raw, c.ndigits, got, c.want)
		}
	}
}

func TestTop12(t *testing.T) {
	if got := Top12(0xFFF0000000000000); got != 0xFFF {
		t.Errorf("Top12 = %#x, want 0xfff", got)
	}
	if got := Top12(0x0010000000000000); got != 0x001 {
		t.Errorf("Top12 = %#x, want 0x001", got)
	}
}
