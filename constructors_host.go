//go:build !tinygo && !baremetal

// This file is built only for non-embedded targets (host-based testing).
package mudlink

import (
	"github.com/jakeread/mudlink/clock"
	"github.com/jakeread/mudlink/driver/stub"
)

// NewStubEngine constructs an Engine over an in-memory stub transport and
// the host's wall clock, for host-side testing without hardware. It also
// returns the underlying *stub.Driver, so the caller can wire two engines
// together with driver/stub's Connect/Pump.
func NewStubEngine(baudRate uint32, opts ...Option) (*Engine, *stub.Driver, error) {
	d := stub.New()
	e, err := New(d, clock.NewSystem(), baudRate, opts...)
	if err != nil {
		return nil, nil, err
	}
	return e, d, nil
}
