//go:build tinygo || baremetal

// Package uart provides a transport.Transport backed by a real TinyGo
// machine.UART peripheral, adapted from ystepanoff-nrfcomm's
// driver/nrf register-level radio driver to the byte-stream UART
// contract this link engine expects.
package uart

import (
	"machine"

	"github.com/jakeread/mudlink/transport"
)

// Driver wraps a machine.UART as a transport.Transport.
type Driver struct {
	uart *machine.UART
	tx   machine.Pin
	rx   machine.Pin
}

// New wraps the given UART peripheral. tx/rx are the pins to configure
// it with; pass machine.NoPin for either to use the board defaults.
func New(u *machine.UART, tx, rx machine.Pin) transport.Transport {
	return &Driver{uart: u, tx: tx, rx: rx}
}

func (d *Driver) Begin(baudrate uint32) {
	d.uart.Configure(machine.UARTConfig{
		BaudRate: baudrate,
		TX:       d.tx,
		RX:       d.rx,
	})
}

func (d *Driver) Available() int {
	return d.uart.Buffered()
}

func (d *Driver) ReadByte() byte {
	b, _ := d.uart.ReadByte()
	return b
}

func (d *Driver) AvailableForWrite() int {
	// machine.UART doesn't expose outbound FIFO headroom directly;
	// WriteByte below blocks internally until there's room, so we
	// report a single byte of headroom per call. ystepanoff-nrfcomm's
	// driver/nrf had the same shape: no notion of an outbound queue
	// depth separate from the single-packet buffer.
	return 1
}

func (d *Driver) WriteByte(b byte) {
	_, _ = d.uart.WriteByte(b)
}

var _ transport.Transport = (*Driver)(nil)
