// Package mudlink provides a façade over the link engine: a point-to-point,
// full-duplex, reliable datagram link layer running atop a byte-oriented
// serial transport.
package mudlink

import (
	"github.com/jakeread/mudlink/clock"
	"github.com/jakeread/mudlink/link"
	"github.com/jakeread/mudlink/logging"
	"github.com/jakeread/mudlink/transport"
)

// The transport-specific convenience constructors are split into
// build-tag specific files:
// - constructors_embedded.go - for embedded platforms (//go:build tinygo || baremetal)
// - constructors_host.go - for development/testing (//go:build !tinygo && !baremetal)

// Re-export the types embedders need so they rarely have to import the
// link subpackage directly.
type (
	Engine = link.Engine
	Option = link.Option
	Stats  = link.Stats
)

const MaxMessageSize = link.MaxMessageSize

var (
	ErrNilTransport    = link.ErrNilTransport
	ErrNilClockSource  = link.ErrNilClockSource
	ErrInvalidBaudRate = link.ErrInvalidBaudRate
)

// WithLogger attaches a logging.Logger to the engine under construction.
func WithLogger(l logging.Logger) Option { return link.WithLogger(l) }

// WithTimingOverride replaces the baud-derived retry/keepalive intervals.
func WithTimingOverride(retryAbsMax, keepAliveTx, keepAliveRx uint64) Option {
	return link.WithTimingOverride(retryAbsMax, keepAliveTx, keepAliveRx)
}

// New constructs an Engine directly from a transport and clock source,
// for embedders who have their own of either rather than using one of
// the New* helpers in constructors_host.go / constructors_embedded.go.
func New(t transport.Transport, clk clock.Source, baudRate uint32, opts ...Option) (*Engine, error) {
	return link.New(t, clk, baudRate, opts...)
}
