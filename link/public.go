package link

// IsOpen reports whether a frame has been received from the peer within
// the last keepalive_rx_interval microseconds.
func (e *Engine) IsOpen() bool {
	return e.now-e.lastRx <= e.keepAliveRxInterval
}

// ClearToSend reports whether Send will accept a new message right now.
func (e *Engine) ClearToSend() bool {
	return e.outgoingLen == 0
}

// Send copies up to MaxMessageSize bytes of buf into the outbound stash
// and arms the engine to emit it on the next Tick. It is a no-op,
// returning false, unless ClearToSend reports true.
func (e *Engine) Send(buf []byte) bool {
	if !e.ClearToSend() {
		return false
	}

	n := copy(e.outgoingStash[:], buf)
	e.outgoingLen = n
	e.ourSeq++
	e.outgoingStartTime = e.now
	return true
}

// ClearToRead reports whether the inbound stash holds an unread message.
func (e *Engine) ClearToRead() bool {
	return e.incomingLen > 0
}

// Read copies the held inbound message into dst, truncated to max (and
// to MaxMessageSize), then clears the stash and arms an ack for the
// next Tick. Returns 0 if ClearToRead is false.
func (e *Engine) Read(dst []byte, max int) int {
	if !e.ClearToRead() {
		return 0
	}

	if max > MaxMessageSize {
		max = MaxMessageSize
	}

	n := e.incomingLen
	if n > max {
		n = max
	}
	copy(dst, e.incomingStash[:n])

	e.ackSeq = e.peerSeqAwaitingRead
	e.incomingLen = 0
	e.ackRequired = true

	return n
}
