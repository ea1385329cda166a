package frame

import (
	"bytes"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		v    byte
		want Frame
	}{
		{"basic set", Command, 0x30, Frame{0xF8, 0x30, 0x00}},
		{"clear", Command, 0x01, Frame{0xF8, 0x00, 0x10}},
		{"row 2 col 5", Command, 0x8D, Frame{0xF8, 0x80, 0xD0}},
		{"letter A", Data, 'A', Frame{0xFA, 0x40, 0x10}},
		{"all ones", Data, 0xFF, Frame{0xFA, 0xF0, 0xF0}},
		{"zero", Data, 0x00, Frame{0xFA, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.sel, tt.v); got != tt.want {
				t.Errorf("Encode(%v, 0x%02X) = % X, want % X", tt.sel, tt.v, got, tt.want)
			}
		})
	}
}

func TestEncodeNibbleIsolation(t *testing.T) {
	for v := 0; v < 256; v++ {
		for _, sel := range []Selector{Command, Data} {
			f := Encode(sel, byte(v))
			if f[1]&0x0F != 0 || f[2]&0x0F != 0 {
				t.Fatalf("Encode(%v, 0x%02X) = % X, low nibbles not cleared", sel, v, f)
			}
			if !f.Valid() {
				t.Fatalf("Encode(%v, 0x%02X) = % X is not Valid", sel, v, f)
			}
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		f := Encode(Data, byte(v))
		got := (f[1]>>4)<<4 | f[2]>>4
		if got != byte(v) {
			t.Fatalf("nibbles of 0x%02X rebuild 0x%02X", v, got)
		}
		if f.Value() != byte(v) {
			t.Fatalf("Encode(Data, 0x%02X).Value() = 0x%02X", v, f.Value())
		}
	}
}

func TestEncodeSyncByte(t *testing.T) {
	for v := 0; v < 256; v++ {
		if b := Encode(Command, byte(v))[0]; b != 0xF8 {
			t.Fatalf("command sync for 0x%02X = 0x%02X, want 0xF8", v, b)
		}
		if b := Encode(Data, byte(v))[0]; b != 0xFA {
			t.Fatalf("data sync for 0x%02X = 0x%02X, want 0xFA", v, b)
		}
	}
}

func TestFrameValid(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
		want bool
	}{
		{"command", Frame{0xF8, 0x30, 0x00}, true},
		{"data", Frame{0xFA, 0x40, 0x10}, true},
		{"read bit set", Frame{0xFC, 0x40, 0x10}, false},
		{"zero sync", Frame{0x00, 0x00, 0x00}, false},
		{"dirty high byte", Frame{0xF8, 0x31, 0x00}, false},
		{"dirty low byte", Frame{0xF8, 0x30, 0x08}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Valid(); got != tt.want {
				t.Errorf("Frame(% X).Valid() = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}

func TestFrameString(t *testing.T) {
	if got, want := Encode(Command, 0x30).String(), "command(0x30)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Encode(Data, 'H').String(), "data(0x48)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Selector(0x12).String(), "Selector(0x12)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAppend(t *testing.T) {
	var b []byte
	b = Append(b, Command, 0x80)
	b = Append(b, Data, 'H')
	want := []byte{0xF8, 0x80, 0x00, 0xFA, 0x40, 0x80}
	if !bytes.Equal(b, want) {
		t.Errorf("Append = % X, want % X", b, want)
	}
}

func TestSplit(t *testing.T) {
	b := []byte{0xF8, 0x80, 0x00, 0xFA, 0x40, 0x80}
	got, err := Split(b)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	want := []Frame{Encode(Command, 0x80), Encode(Data, 'H')}
	if len(got) != len(want) {
		t.Fatalf("Split() returned %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := Split(b[:4]); err == nil {
		t.Error("Split of a partial frame should fail")
	}
	if _, err := Split([]byte{0xF8, 0x81, 0x00}); err == nil {
		t.Error("Split of an invalid frame should fail")
	}
}
