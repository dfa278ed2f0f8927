//go:build tinygo || baremetal

package link

import "runtime/interrupt"

// withTxCriticalSection brackets fn with interrupt masking, the direct
// equivalent of the original firmware's noInterrupts()/interrupts() pair
// around its byte-push loop: the emit loop must be atomic with respect
// to platform interrupts that could also touch the transport's write
// path.
func (e *Engine) withTxCriticalSection(fn func()) {
	state := interrupt.Disable()
	defer interrupt.Restore(state)
	fn()
}
