package link

import "errors"

var (
	// ErrNilTransport is returned by New when the transport is nil.
	ErrNilTransport = errors.New("mudlink: transport must not be nil")
	// ErrNilClockSource is returned by New when the clock source is nil.
	ErrNilClockSource = errors.New("mudlink: clock source must not be nil")
	// ErrInvalidBaudRate is returned by New when baudrate is zero.
	ErrInvalidBaudRate = errors.New("mudlink: baud rate must be greater than zero")
)
