package st7920_test

import (
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/st7920"
	"periph.io/x/devices/v3/st7920/spidev"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Reset on pin 8, chip-select on pin 10, default SPI bus.
	dev, err := st7920.New("8", nil)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	if err := dev.Init(); err != nil {
		log.Fatal(err)
	}
	_ = dev.Clear()
	_ = dev.PrintAt(0, 0, []byte("Hello Galileo!"))
	_ = dev.SetReverse(0)
}

func ExampleNewBus() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// A spidev bus is reconfigured before every frame.
	b, err := spidev.Open("/dev/spidev0.0")
	if err != nil {
		log.Fatal(err)
	}
	cs := gpioreg.ByName("GPIO8")
	rst := gpioreg.ByName("GPIO25")
	if cs == nil || rst == nil {
		log.Fatal("GPIO pins not found")
	}

	dev, err := st7920.NewBus(b, cs, rst, &st7920.Opts{PulseReset: true})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	_ = dev.Init()
	_ = dev.SetPosition(2, 4)
	_ = dev.Print([]byte("spidev"))
}
