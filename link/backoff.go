package link

// backoff computes the retry timeout for the given retry count, with
// txBufferLen the length of the currently loaded (COBS-encoded) frame, so
// the initial interval scales with how long the frame takes to put on
// the wire. For retryCount > 0 it is capped at retryAbsMax; the initial
// interval (retryCount 0) is returned uncapped. As a side effect it folds
// into the high-water-mark statistic the way the reference
// implementation's txTimeoutGenerator does.
func (e *Engine) backoff(retryCount int, txBufferLen int) uint64 {
	t := uint64(RetryInitialMultiplier) * uint64(txBufferLen+1) * e.usPerByte

	for i := 0; i < retryCount; i++ {
		t *= RetryBase
		if t > e.retryAbsMax {
			t = e.retryAbsMax
			break
		}
	}

	if t > e.stats.MaxRetryIntervalIssued {
		e.stats.MaxRetryIntervalIssued = t
	}

	return t
}
