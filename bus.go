package st7920

import (
	"errors"
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// BusConfig holds the bus parameters applied before every frame.
type BusConfig struct {
	Freq physic.Frequency // Clock rate
	Mode spi.Mode         // Clock polarity/phase; spi.LSBFirst flips bit order
	Bits int              // Bits per word
}

// DefaultBusConfig is 200kHz, Mode3 (CPOL=1, CPHA=1), 8-bit words, MSB first.
//
// The ST7920 serial interface samples SID on the rising edge of SCLK with a
// minimum clock cycle of a few microseconds, so a slow clock is used.
var DefaultBusConfig = BusConfig{
	Freq: 200 * physic.KiloHertz,
	Mode: spi.Mode3,
	Bits: 8,
}

// MSBFirst reports whether the most significant bit is sent first.
func (c BusConfig) MSBFirst() bool {
	return c.Mode&spi.LSBFirst == 0
}

func (c BusConfig) String() string {
	return fmt.Sprintf("%v %v %d-bit", c.Freq, c.Mode, c.Bits)
}

// Bus is a serial bus the driver writes frames to.
//
// Configure is called before every frame so that a bus shared with other
// peripherals is always in the mode the controller needs.
type Bus interface {
	Configure(c BusConfig) error
	Tx(w []byte) error
	Close() error
}

// spiBus adapts a periph.io spi.Port to Bus.
type spiBus struct {
	p     spi.Port
	c     spi.Conn
	cfg   BusConfig
	owned bool // close p on Close
}

// Configure connects the port on the first call. periph.io ports can only be
// connected once, so later calls must ask for the same configuration.
func (b *spiBus) Configure(cfg BusConfig) error {
	if b.c != nil {
		if cfg != b.cfg {
			return fmt.Errorf("%w: connected as %s, asked for %s", ErrBusConfig, b.cfg, cfg)
		}
		return nil
	}
	c, err := b.p.Connect(cfg.Freq, cfg.Mode, cfg.Bits)
	if err != nil {
		return err
	}
	b.c = c
	b.cfg = cfg
	return nil
}

func (b *spiBus) Tx(w []byte) error {
	if b.c == nil {
		return errors.New("st7920: bus not configured")
	}
	return b.c.Tx(w, nil)
}

func (b *spiBus) Close() error {
	if !b.owned {
		return nil
	}
	if c, ok := b.p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (b *spiBus) String() string {
	return b.p.String()
}
