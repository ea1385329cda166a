package st7920

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// claims tracks the control lines owned by live devices, by real pin name.
var claims = struct {
	sync.Mutex
	names map[string]struct{}
}{names: map[string]struct{}{}}

// lineName returns the name of the physical pin behind p, following
// gpioreg aliases.
func lineName(p gpio.PinOut) string {
	for {
		r, ok := p.(gpio.RealPin)
		if !ok {
			return p.Name()
		}
		rp := r.Real()
		if rp == nil {
			return p.Name()
		}
		p = rp
	}
}

// claim marks every pin as owned. Either all pins are claimed or none.
func claim(pins ...gpio.PinOut) error {
	claims.Lock()
	defer claims.Unlock()
	seen := make(map[string]struct{}, len(pins))
	for _, p := range pins {
		name := lineName(p)
		if _, ok := claims.names[name]; ok {
			return fmt.Errorf("%w: %s", ErrLineBusy, name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s used twice", ErrLineBusy, name)
		}
		seen[name] = struct{}{}
	}
	for name := range seen {
		claims.names[name] = struct{}{}
	}
	return nil
}

func release(pins ...gpio.PinOut) {
	claims.Lock()
	defer claims.Unlock()
	for _, p := range pins {
		delete(claims.names, lineName(p))
	}
}
