package calendar

import "time"

// Clock abstracts time.Now() to allow deterministic testing. It is the
// only external collaborator of the calendar core: Today reads it once
// and everything else is a pure function of its inputs.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
