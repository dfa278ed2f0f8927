//go:build !tinygo && !baremetal

package link

// withTxCriticalSection runs fn unmodified: on a host build there are no
// platform interrupts that could preempt the transport write path, so
// there is nothing to mask.
func (e *Engine) withTxCriticalSection(fn func()) {
	fn()
}
