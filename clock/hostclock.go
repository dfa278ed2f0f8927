//go:build !tinygo && !baremetal

package clock

import "time"

// System is a Source backed by the host's wall clock, for use with the
// stub transport and the mudlink-echo demo where no real UART
// microsecond counter is available. It wraps at the same 32-bit boundary
// a hardware counter would.
type System struct {
	start time.Time
}

// NewSystem starts a System clock at the current instant.
func NewSystem() *System {
	return &System{start: time.Now()}
}

func (s *System) Micros() uint32 {
	return uint32(time.Since(s.start).Microseconds())
}
