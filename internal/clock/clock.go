// Package clock abstracts the engine's monotonic time source so the
// tap-hold state machine and the event processor can be driven by a
// deterministic virtual clock under test, grounded on the reference
// implementation's real/virtual clock split.
package clock

import "time"

// Clock returns microseconds from an unspecified monotonic epoch.
type Clock interface {
	// Now returns the current time in microseconds. For RealClock this
	// advances with the wall clock; for VirtualClock it only advances
	// when Set or Advance is called.
	Now() uint64
}

// RealClock wraps time.Now for production use.
type RealClock struct {
	epoch time.Time
}

// NewRealClock returns a RealClock whose epoch is the moment of creation.
func NewRealClock() *RealClock {
	return &RealClock{epoch: time.Now()}
}

// Now returns microseconds elapsed since the clock was created.
func (c *RealClock) Now() uint64 {
	return uint64(time.Since(c.epoch).Microseconds())
}

// VirtualClock is a test-controlled clock that only moves when told to.
type VirtualClock struct {
	nowUS uint64
}

// NewVirtualClock creates a VirtualClock starting at t=0.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Now returns the current virtual time in microseconds.
func (c *VirtualClock) Now() uint64 {
	return c.nowUS
}

// Set pins the virtual clock to an absolute microsecond value. It is a
// no-op if t is earlier than the current value, since a device stream's
// timestamps are required to be non-decreasing.
func (c *VirtualClock) Set(t uint64) {
	if t > c.nowUS {
		c.nowUS = t
	}
}

// Advance moves the virtual clock forward by deltaUS microseconds.
func (c *VirtualClock) Advance(deltaUS uint64) {
	c.nowUS += deltaUS
}
