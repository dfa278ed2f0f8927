//go:build tinygo || baremetal

// This file is built only for embedded targets (using a real UART).
package mudlink

import (
	"machine"

	"github.com/jakeread/mudlink/clock"
	"github.com/jakeread/mudlink/driver/uart"
)

// NewUARTEngine constructs an Engine over a real machine.UART peripheral.
// The embedder supplies the microsecond clock source, since the
// underlying timer peripheral varies by board.
func NewUARTEngine(u *machine.UART, tx, rx machine.Pin, clk clock.Source, baudRate uint32, opts ...Option) (*Engine, error) {
	return New(uart.New(u, tx, rx), clk, baudRate, opts...)
}
