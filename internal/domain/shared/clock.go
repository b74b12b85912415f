package shared

import "time"

// Clock provides the current time. Services take a Clock instead of calling
// time.Now directly so that report windows are reproducible in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock in the given location (local time when nil)
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

// Now returns the current time
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}
