package link

import (
	"github.com/pkg/errors"

	"github.com/jakeread/mudlink/clock"
	"github.com/jakeread/mudlink/logging"
	"github.com/jakeread/mudlink/transport"
)

// MaxMessageSize is the largest application payload the engine will carry
// in a single message.
const MaxMessageSize = 248

// bufferSlack is the per-frame headroom reserved in the wire buffers for
// the ack/seq/crc trailer plus COBS overhead.
const bufferSlack = 8

const bufferSize = MaxMessageSize + bufferSlack

// MaxRetries is the number of retransmissions attempted before a message
// is given up on.
const MaxRetries = 10

// RetryBase is the exponential growth factor applied to the retry
// timeout on every retransmission.
const RetryBase = 2

// RetryInitialMultiplier scales the first retry timeout relative to the
// per-byte wire time of the loaded frame.
const RetryInitialMultiplier = 6

// initialSequenceNumber is the value our_seq starts at. It has no
// significance beyond matching the reference implementation's choice,
// which callers on the wire should not need to care about.
const initialSequenceNumber = 12

// Engine is a single point-to-point link endpoint. It is driven entirely
// by repeated calls to Tick; nothing here spawns goroutines or touches
// the transport outside of Begin and Tick.
type Engine struct {
	transport transport.Transport
	clock     *clock.Extended
	logger    logging.Logger

	baudRate uint32

	usPerByte           uint64
	retryAbsMax         uint64
	keepAliveTxInterval uint64
	keepAliveRxInterval uint64

	now uint64

	ourSeq            byte
	outgoingLen       int
	outgoingStash     [MaxMessageSize]byte
	outgoingStartTime uint64
	lastTxTime        uint64
	timeout           uint64
	retryCount        int
	lastTxOut         uint64

	peerSeqAwaitingRead byte
	ackSeq              byte
	ackRequired         bool
	incomingLen         int
	incomingStash       [MaxMessageSize]byte
	lastRx              uint64

	rxBuffer [bufferSize]byte
	rxWp     int

	txBuffer [bufferSize]byte
	txRp     int
	txLen    int

	stats Stats
}

// Option configures an Engine at construction time.
type Option func(*Engine) error

// WithLogger attaches a logger. The default is logging.Dummy, which
// discards everything.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) error {
		e.logger = l
		return nil
	}
}

// WithTimingOverride replaces the baud-rate-derived retry and keepalive
// intervals with fixed values, microseconds, so tests can exercise
// retry/giveup/keepalive behavior without waiting on real wire time.
func WithTimingOverride(retryAbsMax, keepAliveTxInterval, keepAliveRxInterval uint64) Option {
	return func(e *Engine) error {
		e.retryAbsMax = retryAbsMax
		e.keepAliveTxInterval = keepAliveTxInterval
		e.keepAliveRxInterval = keepAliveRxInterval
		return nil
	}
}

// New constructs an Engine bound to the given transport and clock
// source, running at baudRate. The baud rate is used only to derive
// timing constants (bytes-on-the-wire durations, retry and keepalive
// intervals); it is also what Begin configures the transport with.
func New(t transport.Transport, clk clock.Source, baudRate uint32, opts ...Option) (*Engine, error) {
	e := &Engine{
		transport: t,
		logger:    logging.Dummy{},
		ourSeq:    initialSequenceNumber,
	}

	for i, opt := range opts {
		if err := opt(e); err != nil {
			return nil, errors.Wrapf(err, "mudlink: applying option %d", i)
		}
	}

	if t == nil {
		e.logger.WithError(ErrNilTransport).Error("mudlink: construction failed")
		return nil, ErrNilTransport
	}
	if clk == nil {
		e.logger.WithError(ErrNilClockSource).Error("mudlink: construction failed")
		return nil, ErrNilClockSource
	}
	if baudRate == 0 {
		e.logger.WithError(ErrInvalidBaudRate).Error("mudlink: construction failed")
		return nil, ErrInvalidBaudRate
	}

	usPerByte := uint64(10_000_000) / uint64(baudRate)
	if usPerByte == 0 {
		usPerByte = 1
	}

	e.clock = clock.NewExtended(clk)
	e.baudRate = baudRate
	e.usPerByte = usPerByte

	// WithTimingOverride may already have set these; only fall back to
	// the baud-derived defaults for whichever it left untouched.
	if e.retryAbsMax == 0 {
		e.retryAbsMax = usPerByte * 100_000
	}
	if e.keepAliveTxInterval == 0 {
		e.keepAliveTxInterval = e.retryAbsMax / 4
	}
	if e.keepAliveRxInterval == 0 {
		e.keepAliveRxInterval = e.retryAbsMax / 2
	}

	return e, nil
}

// Begin configures the underlying transport for this link's baud rate.
// Call it once before the first Tick.
func (e *Engine) Begin() {
	e.transport.Begin(e.baudRate)
}
