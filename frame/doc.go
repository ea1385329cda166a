// Package frame provides the 3-byte serial frame used by the ST7920 LCD controller.
//
// In serial mode the ST7920 receives every instruction as a burst of three bytes.
// The first byte is a synchronization byte whose RS bit selects between the
// instruction register (command) and the data RAM (data). The instruction byte
// then follows as two nibbles, each left-justified in its own byte.
//
// Memory layout example for the data byte 'A' (0x41):
//
//	Byte:  0     1     2
//	Value: 0xFA  0x40  0x10
//	       (0xFA = sync, RS=1 for data)
//	       (0x40 = high nibble 4 in the upper bits)
//	       (0x10 = low nibble 1 in the upper bits)
//
// This package provides:
//
// - Selector: the sync byte choosing command or data
// - Frame: the encoded 3-byte burst
// - Encode, Append: build frames from instruction bytes
//
// Example usage:
//
//	f := frame.Encode(frame.Command, 0x30)
//	bus.Tx(f[:])
//
//	// Decode back
//	println(f.Value()) // Output: 48
package frame
