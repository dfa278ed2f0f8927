//go:build !tinygo && !baremetal

// Package stub provides an in-memory transport.Transport for host-side
// testing, standing in for a real UART when no hardware is attached.
package stub

import (
	"sync"

	"github.com/jakeread/mudlink/transport"
)

// ringCapacity bounds the byte queues; this is a test double, not a
// production buffer, so a generous fixed size is fine.
const ringCapacity = 4096

// Driver is a loopback-free transport.Transport backed by two byte
// ring buffers: an rx queue fed by InjectRx (simulating bytes arriving
// on the wire) and drained by the engine via ReadByte, and a tx queue
// the engine writes into and tests empty with DrainTx.
type Driver struct {
	mu sync.Mutex

	rx ringBuffer
	tx ringBuffer
}

// New creates an unconnected stub transport.
func New() *Driver {
	return &Driver{}
}

func (d *Driver) Begin(baudrate uint32) {}

func (d *Driver) Available() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rx.len()
}

func (d *Driver) ReadByte() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, _ := d.rx.pop()
	return b
}

func (d *Driver) AvailableForWrite() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ringCapacity - d.tx.len()
}

func (d *Driver) WriteByte(b byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tx.push(b)
}

// InjectRx simulates bytes arriving over the wire, making them visible to
// Available/ReadByte.
func (d *Driver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range data {
		d.rx.push(b)
	}
}

// DrainTx removes and returns everything the engine has written so far.
func (d *Driver) DrainTx() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]byte, 0, d.tx.len())
	for d.tx.len() > 0 {
		b, _ := d.tx.pop()
		out = append(out, b)
	}
	return out
}

// Connect wires a's tx queue into b's rx queue and vice versa, so two
// engines driven against a and b exchange bytes as if over a real wire.
// Call Pump after each side ticks to move bytes across.
func Connect(a, b *Driver) *Link {
	return &Link{a: a, b: b}
}

// Link is the bidirectional wire between two stub transports.
type Link struct {
	a, b *Driver
}

// Pump forwards everything each side has written into the other side's
// inbound queue. It must be called between ticks for bytes to cross.
func (l *Link) Pump() {
	l.a.InjectRx(l.b.DrainTx())
	l.b.InjectRx(l.a.DrainTx())
}

type ringBuffer struct {
	data       [ringCapacity]byte
	head, tail int
	count      int
}

func (rb *ringBuffer) push(b byte) {
	if rb.count == ringCapacity {
		// drop the oldest byte rather than block; this is a test
		// double standing in for a bounded hardware FIFO.
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = b
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() (byte, bool) {
	if rb.count == 0 {
		return 0, false
	}
	b := rb.data[rb.head]
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return b, true
}

func (rb *ringBuffer) len() int {
	return rb.count
}

var _ transport.Transport = (*Driver)(nil)
