package domain

import "time"

// Clock provides the current time. Implementations may be real (production)
// or deterministic (testing). The watch face reads it once at mount and the
// scheduler reads it when aligning ticks to interval boundaries.
type Clock interface {
	// Now returns the current time in the host's local zone.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock at compile time.
var _ Clock = RealClock{}
