// Package clock provides time utilities for the application.
package clock

import "time"

// Clock provides time functionality. Injected wherever timestamps are
// written so tests control the clock.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time.
type Real struct{}

// Now returns the current time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock.
func New() Clock {
	return &Real{}
}

// Fixed implements Clock with a constant time, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (c *Fixed) Now() time.Time {
	return c.T
}
