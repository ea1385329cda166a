// Package spidev provides a st7920.Bus on a Linux spidev device through
// golang.org/x/exp/io/spi.
//
// Unlike a periph.io port, a spidev device accepts new clock, mode and bit
// order settings at any time, so every frame re-applies the full
// configuration. Use it when the bus is shared with other peripherals.
package spidev

import (
	"fmt"

	xspi "golang.org/x/exp/io/spi"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7920"
)

// DefaultDevice is the first chip select of the first bus.
const DefaultDevice = "/dev/spidev0.0"

// device is the subset of *xspi.Device used by Bus.
type device interface {
	SetMode(mode xspi.Mode) error
	SetMaxSpeed(speed int) error
	SetBitsPerWord(bits int) error
	SetBitOrder(o xspi.Order) error
	Tx(w, r []byte) error
	Close() error
}

// Bus is a st7920.Bus backed by a spidev device.
type Bus struct {
	d    device
	name string
	r    []byte // Read buffer, spidev transfers are full duplex
}

// Open opens the spidev device, for example "/dev/spidev0.0".
// An empty name opens DefaultDevice.
func Open(dev string) (*Bus, error) {
	if dev == "" {
		dev = DefaultDevice
	}
	cfg := st7920.DefaultBusConfig
	d, err := xspi.Open(&xspi.Devfs{
		Dev:      dev,
		Mode:     mode(cfg.Mode),
		MaxSpeed: int64(cfg.Freq / physic.Hertz),
	})
	if err != nil {
		return nil, fmt.Errorf("spidev: open %s: %w", dev, err)
	}
	return &Bus{d: d, name: dev}, nil
}

// Configure applies clock rate, mode, word size and bit order.
func (b *Bus) Configure(c st7920.BusConfig) error {
	if err := b.d.SetMaxSpeed(int(c.Freq / physic.Hertz)); err != nil {
		return fmt.Errorf("spidev: set speed %v: %w", c.Freq, err)
	}
	if err := b.d.SetMode(mode(c.Mode)); err != nil {
		return fmt.Errorf("spidev: set mode %v: %w", c.Mode, err)
	}
	if err := b.d.SetBitsPerWord(c.Bits); err != nil {
		return fmt.Errorf("spidev: set %d bits per word: %w", c.Bits, err)
	}
	order := xspi.LSBFirst
	if c.MSBFirst() {
		order = xspi.MSBFirst
	}
	if err := b.d.SetBitOrder(order); err != nil {
		return fmt.Errorf("spidev: set bit order: %w", err)
	}
	return nil
}

// Tx writes w and discards what is read back.
func (b *Bus) Tx(w []byte) error {
	if len(w) > len(b.r) {
		b.r = make([]byte, len(w))
	}
	return b.d.Tx(w, b.r[:len(w)])
}

// Close closes the device.
func (b *Bus) Close() error {
	return b.d.Close()
}

func (b *Bus) String() string {
	return b.name
}

// mode keeps the clock polarity and phase bits of m.
func mode(m spi.Mode) xspi.Mode {
	return xspi.Mode(m & 0x3)
}

var _ st7920.Bus = &Bus{}
