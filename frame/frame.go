// Package frame provides the 3-byte serial frame used by the ST7920 LCD controller.
//
// Each frame carries one instruction byte split into two nibbles. The high
// nibble travels in byte 1, the low nibble in byte 2, both in the upper four
// bits with the lower four bits zero.
package frame

import "fmt"

// Selector is the synchronization byte that starts a frame.
// It is 0b11111 followed by RW=0, RS, and a trailing 0.
type Selector byte

const (
	// Command selects the instruction register (RS=0).
	Command Selector = 0xF8
	// Data selects the data RAM (RS=1).
	Data Selector = 0xFA
)

// Size is the number of bytes sent on the wire per instruction byte.
const Size = 3

// String returns "command", "data" or the raw hex value.
func (s Selector) String() string {
	switch s {
	case Command:
		return "command"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("Selector(0x%02x)", byte(s))
	}
}

// Frame is one encoded instruction byte as it appears on the wire.
type Frame [Size]byte

// Encode splits v into the frame selected by s.
func Encode(s Selector, v byte) Frame {
	return Frame{byte(s), v & 0xF0, (v << 4) & 0xF0}
}

// Append appends the frame for v to dst and returns the extended slice.
func Append(dst []byte, s Selector, v byte) []byte {
	f := Encode(s, v)
	return append(dst, f[:]...)
}

// Selector returns the sync byte of the frame.
func (f Frame) Selector() Selector {
	return Selector(f[0])
}

// Value joins the two nibbles back into the instruction byte.
// The lower four bits of bytes 1 and 2 are ignored.
func (f Frame) Value() byte {
	return (f[1] & 0xF0) | (f[2] >> 4)
}

// Valid reports whether the sync byte is Command or Data and both nibble
// bytes have their lower four bits cleared.
func (f Frame) Valid() bool {
	if f.Selector() != Command && f.Selector() != Data {
		return false
	}
	return f[1]&0x0F == 0 && f[2]&0x0F == 0
}

// String returns a representation such as "command(0x30)".
func (f Frame) String() string {
	return fmt.Sprintf("%s(0x%02x)", f.Selector(), f.Value())
}

// Split decodes a byte stream made of whole frames.
// It returns an error if len(b) is not a multiple of Size or a frame is invalid.
func Split(b []byte) ([]Frame, error) {
	if len(b)%Size != 0 {
		return nil, fmt.Errorf("frame: %d bytes is not a whole number of frames", len(b))
	}
	out := make([]Frame, 0, len(b)/Size)
	for i := 0; i < len(b); i += Size {
		f := Frame{b[i], b[i+1], b[i+2]}
		if !f.Valid() {
			return nil, fmt.Errorf("frame: invalid frame % x at offset %d", b[i:i+Size], i)
		}
		out = append(out, f)
	}
	return out, nil
}
