package link

import (
	"github.com/jakeread/mudlink/cobs"
	"github.com/jakeread/mudlink/crc16"
)

// Tick drives one unit of RX and TX work. It performs a bounded amount
// of work per call and never blocks; callers are expected to invoke it
// repeatedly from a single execution context (a super-loop).
func (e *Engine) Tick() {
	e.now = e.clock.Now()

	e.rxTick()
	e.txTick()
}

func (e *Engine) rxTick() {
	for e.transport.Available() > 0 {
		b := e.transport.ReadByte()

		idx := e.rxWp
		e.rxBuffer[idx] = b
		e.rxWp++

		if b == 0x00 {
			e.handleFrame(e.rxBuffer[:idx+1])
			e.rxWp = 0
			continue
		}

		if e.rxWp >= len(e.rxBuffer) {
			// Overflow: whatever is accumulated so far can no longer be a
			// valid frame. Wrapping to zero discards it; the eventual
			// decode of the truncated remainder will fail CRC or the
			// minimum-length check.
			e.rxWp = 0
		}
	}
}

// handleFrame COBS-decodes a single delimited frame (including its
// trailing 0x00) in place and, if it passes the minimum-length and CRC
// checks, hands it to onPacketRx.
func (e *Engine) handleFrame(frame []byte) {
	decoded := cobs.Decode(frame, frame)
	// cobs.Decode's sentinel-inclusive contract counts the trailing
	// delimiter as a decoded byte; the payload itself is one shorter.
	length := decoded - 1

	if length < 4 {
		e.stats.RxFail++
		return
	}

	payload := frame[:length]
	computed := crc16.Checksum(payload[:length-2])
	received := uint16(payload[length-2])<<8 | uint16(payload[length-1])
	if computed != received {
		e.stats.RxFail++
		return
	}

	e.stats.RxOk++
	e.lastRx = e.now
	e.onPacketRx(payload[:length-2])
}

// onPacketRx processes a frame that has already passed CRC. body holds
// message bytes (if any) followed by ack_seq and our_seq (the peer's
// notion of "our", i.e. its own sequence number).
func (e *Engine) onPacketRx(body []byte) {
	incomingAck := body[len(body)-2]
	incomingSeq := body[len(body)-1]

	if e.outgoingLen > 0 && incomingAck == e.ourSeq {
		totalTransmitTime := e.now - e.outgoingStartTime
		wireTime := float64(e.outgoingLen) * float64(e.usPerByte)
		ewmaUpdate(&e.stats.AvgTotalTransmitTime, float64(totalTransmitTime))
		ewmaUpdate(&e.stats.AvgWireTime, wireTime)
		e.stats.TxOk++
		e.resetOutgoing()
	}

	if len(body) > 2 {
		message := body[:len(body)-2]
		if incomingSeq == e.peerSeqAwaitingRead {
			if e.incomingLen == 0 {
				e.ackRequired = true
			}
		} else {
			e.peerSeqAwaitingRead = incomingSeq
			e.incomingLen = copy(e.incomingStash[:], message)
		}
	}
}

func (e *Engine) resetOutgoing() {
	e.outgoingLen = 0
	e.lastTxTime = 0
	e.retryCount = 0
}

func (e *Engine) txTick() {
	if e.txLen == 0 {
		switch {
		case e.outgoingLen > 0 && e.lastTxTime == 0:
			e.loadDataFrame()
			e.lastTxTime = e.now
			e.ackRequired = false
			e.lastTxOut = e.now
			e.timeout = e.backoff(e.retryCount, e.txLen)

		case e.outgoingLen > 0 && e.now-e.lastTxTime > e.timeout:
			e.stats.TxTotalRetries++
			e.retryCount++
			if e.retryCount > MaxRetries {
				e.logger.WithField("retry_count", e.retryCount).Error("mudlink: giving up on outbound message, retries exhausted")
				e.stats.TxFail++
				e.resetOutgoing()
			} else {
				e.loadDataFrame()
				e.lastTxTime = e.now
				e.ackRequired = false
				e.lastTxOut = e.now
				e.timeout = e.backoff(e.retryCount, e.txLen)
			}

		case e.ackRequired:
			e.loadAckFrame()
			e.ackRequired = false
			e.lastTxOut = e.now

		case e.now-e.lastTxOut > e.keepAliveTxInterval:
			e.loadAckFrame()
			e.ackRequired = false
			e.lastTxOut = e.now
		}
	}

	if e.txLen > 0 {
		e.withTxCriticalSection(func() {
			avail := e.transport.AvailableForWrite()
			for avail > 0 && e.txRp < e.txLen {
				e.transport.WriteByte(e.txBuffer[e.txRp])
				e.txRp++
				avail--
			}
			if e.txRp >= e.txLen {
				e.txRp = 0
				e.txLen = 0
			}
		})
	}
}

// loadDataFrame encodes the outbound stash plus its ack_seq/our_seq/crc
// trailer into the transmit working buffer, COBS-encoded with a
// trailing delimiter.
func (e *Engine) loadDataFrame() {
	var raw [MaxMessageSize + 4]byte
	n := copy(raw[:], e.outgoingStash[:e.outgoingLen])
	raw[n] = e.ackSeq
	raw[n+1] = e.ourSeq
	crc := crc16.Checksum(raw[:n+2])
	raw[n+2] = byte(crc >> 8)
	raw[n+3] = byte(crc)

	encoded := cobs.Encode(raw[:n+4], e.txBuffer[:])
	e.txBuffer[encoded] = 0x00
	e.txLen = encoded + 1
	e.txRp = 0
}

// loadAckFrame encodes a 0-body frame carrying only ack_seq, our_seq and
// its CRC: an ack-only or keepalive emission.
func (e *Engine) loadAckFrame() {
	var raw [4]byte
	raw[0] = e.ackSeq
	raw[1] = e.ourSeq
	crc := crc16.Checksum(raw[:2])
	raw[2] = byte(crc >> 8)
	raw[3] = byte(crc)

	encoded := cobs.Encode(raw[:], e.txBuffer[:])
	e.txBuffer[encoded] = 0x00
	e.txLen = encoded + 1
	e.txRp = 0
}
