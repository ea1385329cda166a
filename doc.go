// Package st7920 controls a ST7920 dot-matrix LCD in text mode via SPI.
//
// The ST7920 is a Chinese/Latin character LCD controller, commonly found on
// 128×64 "12864" modules. In text mode it shows 4 rows of 16 half-width
// characters. This driver only covers text mode.
//
// # Hardware Connection
//
// Use the display's serial mode (PSB tied low) and connect it like this:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 5V
//	E (SCLK)    → SPI Clock (SCLK)
//	R/W (SID)   → SPI Data (MOSI)
//	RS (CS)     → GPIO (chip-select, default "10")
//	RST         → GPIO (reset)
//	PSB         → GND
//
// The chip-select line is driven by the driver, not by the SPI controller.
//
// # Serial Protocol
//
// Every instruction byte is sent as three bytes: a sync byte (0xF8 for a
// command, 0xFA for data), then the high nibble and the low nibble, each in
// the upper four bits of its own byte. Package frame implements the encoding.
//
// Before each frame the bus is configured again (200kHz, Mode3, MSB first by
// default) so that a shared bus left in another mode by a different device is
// fixed up.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/devices/v3/st7920"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//
//		// Reset on GPIO8, chip-select and bus from DefaultOpts.
//		dev, err := st7920.New("8", nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Close()
//
//		dev.Init()
//		dev.Clear()
//		dev.PrintAt(0, 0, []byte("Hello Galileo!"))
//	}
//
// # Coordinates
//
// Rows are 0-3 and columns 0-15. PrintAt, SetPosition and SetReverse
// silently ignore out of range coordinates so a display loop never fails on
// a bad position. Text stops at the first 0 byte.
//
// # Reverse Video
//
//	dev.SetReverse(1) // Toggle row 1
//
// # Shared Buses
//
// A periph.io spi.Port can only be connected once, so NewSPI and New keep the
// first configuration. When the bus is shared with devices needing other
// settings use package spidev with NewBus: it re-applies clock, mode and bit
// order on every frame.
//
// # Datasheet
//
// https://www.lcd-module.de/eng/pdf/zubehoer/st7920_chinese.pdf
package st7920
