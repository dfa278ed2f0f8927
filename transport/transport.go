// Package transport defines the byte-oriented serial transport contract
// the link engine consumes. Implementations wrap a UART-like channel:
// flow inspection and raw byte I/O only, nothing else.
package transport

// Transport is the capability record the link engine depends on. It
// mirrors a classic Arduino-style HardwareSerial: non-blocking flow
// inspection plus single-byte read/write. Parity, framing errors and flow
// control below the byte layer are the transport's concern, not the
// engine's.
type Transport interface {
	// Begin performs one-time setup for the given baud rate.
	Begin(baudrate uint32)

	// Available returns the number of inbound bytes buffered and ready
	// to read.
	Available() int

	// ReadByte consumes and returns one inbound byte.
	// Precondition: Available() > 0.
	ReadByte() byte

	// AvailableForWrite returns the number of bytes that can be written
	// without blocking.
	AvailableForWrite() int

	// WriteByte enqueues one outbound byte.
	// Precondition: AvailableForWrite() > 0.
	WriteByte(b byte)
}
