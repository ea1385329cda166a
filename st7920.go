// Package st7920 controls a ST7920 dot-matrix LCD in text mode via SPI.
//
// The ST7920 shows 4 rows of 16 half-width characters. In serial mode every
// instruction byte is sent as a 3-byte frame, see package frame.
//
// See the examples for how to use this package.
package st7920

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/st7920/frame"
)

// Text geometry.
const (
	Rows = 4
	Cols = 16
)

// Instruction set.
const (
	cmdClear      = 0x01
	cmdReverse    = 0x04 // Extended set only, plus row
	cmdEntryMode  = 0x06 // Increment address, no shift
	cmdDisplayOff = 0x08
	cmdDisplayOn  = 0x0C
	cmdBasicSet   = 0x30
	cmdExtendSet  = 0x34
	cmdHome       = 0x80
)

// Controller timing.
const (
	startupDelay = 100 * time.Millisecond
	clearDelay   = 5 * time.Millisecond
)

// Chip-select levels around a frame. The line is driven high to start a
// frame and low once it is sent.
const (
	csActive = gpio.High
	csIdle   = gpio.Low
)

// DDRAM address of column 0 for each row.
var rowBase = [Rows]byte{0x80, 0x90, 0x88, 0x98}

var (
	// ErrLineUnavailable is returned when a line or the bus cannot be acquired.
	ErrLineUnavailable = errors.New("st7920: resource unavailable")
	// ErrLineBusy is returned when a line is already owned by another Dev.
	ErrLineBusy = errors.New("st7920: line already claimed")
	// ErrTx is returned when a frame could not be written.
	ErrTx = errors.New("st7920: transmission failed")
	// ErrBusConfig is returned when a connected port is asked for another configuration.
	ErrBusConfig = errors.New("st7920: bus configuration mismatch")

	errClosed = errors.New("st7920: closed")
)

// Opts is the configuration for the ST7920 display.
type Opts struct {
	// Pin and bus names used by New.
	CS  string // Chip-select pin (default: "10")
	Bus string // SPI bus (default: first registered)

	// Parameters applied before every frame (default: DefaultBusConfig).
	BusConfig BusConfig

	// Pulse the reset line instead of chip-select during Init.
	PulseReset bool

	// Logger receives Init and per-frame debug messages (default: logrus
	// standard logger).
	Logger logrus.FieldLogger
}

// DefaultOpts is used when nil options are passed.
var DefaultOpts = Opts{
	CS:        "10",
	BusConfig: DefaultBusConfig,
}

// Dev is the device handle for the ST7920 display.
//
// A Dev exclusively owns its chip-select and reset lines until Close.
type Dev struct {
	mu sync.Mutex

	// Communication
	bus Bus
	cfg BusConfig
	cs  gpio.PinOut // Chip-select, also RS on the display header
	rst gpio.PinOut // Reset

	pulseReset bool
	log        logrus.FieldLogger
	sleep      func(time.Duration)

	closed bool
}

// New acquires the reset pin rst and the chip-select pin opts.CS by name,
// opens the SPI bus opts.Bus and returns a Dev that owns all three.
//
// host.Init() must have been called. No data is sent to the display; call
// Init before writing.
//
// The port is connected once, on the first frame, with opts.BusConfig. Later
// frames check the configuration but cannot re-apply it, since a periph.io
// port accepts a single Connect. Use NewBus with package spidev when another
// device on the bus may change its mode between frames.
func New(rst string, opts *Opts) (*Dev, error) {
	opts = withDefaults(opts)
	rstPin := gpioreg.ByName(rst)
	if rstPin == nil {
		return nil, fmt.Errorf("%w: reset pin %q not found", ErrLineUnavailable, rst)
	}
	csPin := gpioreg.ByName(opts.CS)
	if csPin == nil {
		return nil, fmt.Errorf("%w: chip-select pin %q not found", ErrLineUnavailable, opts.CS)
	}
	p, err := spireg.Open(opts.Bus)
	if err != nil {
		return nil, fmt.Errorf("%w: spi bus %q: %w", ErrLineUnavailable, opts.Bus, err)
	}
	d, err := NewBus(&spiBus{p: p, owned: true}, csPin, rstPin, opts)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return d, nil
}

// NewSPI creates a Dev on a periph.io SPI port.
//
// The port is connected on the first frame with opts.BusConfig and stays
// open after Close; the caller owns it. As with New, the configuration is
// applied only once.
func NewSPI(p spi.Port, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil spi port", ErrLineUnavailable)
	}
	return NewBus(&spiBus{p: p}, cs, rst, opts)
}

// NewBus creates a Dev writing frames to b.
//
// Both lines are claimed and driven high. b is closed by Close.
func NewBus(b Bus, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	opts = withDefaults(opts)
	if b == nil {
		return nil, fmt.Errorf("%w: nil bus", ErrLineUnavailable)
	}
	if cs == nil || rst == nil {
		return nil, fmt.Errorf("%w: nil control line", ErrLineUnavailable)
	}
	if err := claim(cs, rst); err != nil {
		return nil, err
	}
	if err := rst.Out(gpio.High); err != nil {
		release(cs, rst)
		return nil, fmt.Errorf("%w: reset pin %s: %w", ErrLineUnavailable, rst.Name(), err)
	}
	if err := cs.Out(gpio.High); err != nil {
		release(cs, rst)
		return nil, fmt.Errorf("%w: chip-select pin %s: %w", ErrLineUnavailable, cs.Name(), err)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.WithField("dev", "st7920")
	}
	return &Dev{
		bus:        b,
		cfg:        opts.BusConfig,
		cs:         cs,
		rst:        rst,
		pulseReset: opts.PulseReset,
		log:        log,
		sleep:      time.Sleep,
	}, nil
}

func withDefaults(opts *Opts) *Opts {
	if opts == nil {
		return &DefaultOpts
	}
	o := *opts
	if o.CS == "" {
		o.CS = DefaultOpts.CS
	}
	if o.BusConfig == (BusConfig{}) {
		o.BusConfig = DefaultBusConfig
	}
	return &o
}

// Init runs the power-on sequence: a 100ms pulse on chip-select (or reset
// with Opts.PulseReset), basic instruction set, clear, entry mode and
// display on.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}

	line := d.cs
	if d.pulseReset {
		line = d.rst
	}
	d.log.Infof("st7920: init, pulsing %s", line.Name())
	if err := line.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7920: failed to pull %s low: %w", line.Name(), err)
	}
	d.sleep(startupDelay)
	if err := line.Out(gpio.High); err != nil {
		return fmt.Errorf("st7920: failed to pull %s high: %w", line.Name(), err)
	}

	if err := d.command(cmdBasicSet); err != nil {
		return err
	}
	if err := d.clear(); err != nil {
		return err
	}
	if err := d.command(cmdEntryMode); err != nil {
		return err
	}
	return d.command(cmdDisplayOn)
}

// Clear blanks the display and moves the cursor to (0, 0).
// It returns once the controller is done, 5ms after the command.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	return d.clear()
}

func (d *Dev) clear() error {
	if err := d.command(cmdClear); err != nil {
		return err
	}
	d.sleep(clearDelay)
	return nil
}

// Home moves the cursor to (0, 0).
func (d *Dev) Home() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	return d.command(cmdHome)
}

// Print writes text at the current cursor position.
//
// Writing stops at the first 0 byte. There is no wrapping; the controller
// advances its address counter on its own.
func (d *Dev) Print(text []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	return d.print(text)
}

// PrintAt writes text starting at row, col.
//
// Out of range coordinates are ignored and nothing is sent.
func (d *Dev) PrintAt(row, col int, text []byte) error {
	addr, ok := address(row, col)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	if err := d.command(addr); err != nil {
		return err
	}
	return d.print(text)
}

// SetPosition moves the cursor to row, col. Out of range coordinates are
// ignored.
func (d *Dev) SetPosition(row, col int) error {
	addr, ok := address(row, col)
	if !ok {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	return d.command(addr)
}

// SetReverse toggles reverse video on row. Out of range rows are ignored.
//
// The toggle is only accepted in the extended instruction set, so the
// controller is switched there and back while holding the device.
func (d *Dev) SetReverse(row int) error {
	if row < 0 || row >= Rows {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	for _, c := range []byte{cmdExtendSet, cmdReverse + byte(row), cmdBasicSet} {
		if err := d.command(c); err != nil {
			return err
		}
	}
	return nil
}

// Halt turns the display off. Init turns it back on.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errClosed
	}
	return d.command(cmdDisplayOff)
}

// Close releases the control lines and closes the bus.
// Further calls return an error.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	release(d.cs, d.rst)
	d.log.Debugf("st7920: released %s and %s", d.cs.Name(), d.rst.Name())
	return d.bus.Close()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	bus := "bus"
	if s, ok := d.bus.(fmt.Stringer); ok {
		bus = s.String()
	}
	return fmt.Sprintf("st7920.Dev{%s, cs=%s, rst=%s}", bus, d.cs.Name(), d.rst.Name())
}

// address returns the set-DDRAM-address command for row, col.
func address(row, col int) (byte, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return 0, false
	}
	return rowBase[row] + byte(col), true
}

func (d *Dev) print(text []byte) error {
	for _, c := range text {
		if c == 0 {
			break
		}
		if err := d.send(frame.Data, c); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) command(c byte) error {
	return d.send(frame.Command, c)
}

// send writes one frame. The bus is reconfigured before every frame and a
// failed frame is never retried.
func (d *Dev) send(sel frame.Selector, v byte) error {
	if err := d.bus.Configure(d.cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrTx, err)
	}
	if err := d.cs.Out(csActive); err != nil {
		return fmt.Errorf("%w: chip-select: %w", ErrTx, err)
	}
	f := frame.Encode(sel, v)
	d.log.Debugf("st7920: %v", f)
	if err := d.bus.Tx(f[:]); err != nil {
		_ = d.cs.Out(csIdle)
		return fmt.Errorf("%w: %w", ErrTx, err)
	}
	if err := d.cs.Out(csIdle); err != nil {
		return fmt.Errorf("%w: chip-select: %w", ErrTx, err)
	}
	return nil
}

var _ conn.Resource = &Dev{}
