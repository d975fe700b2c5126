// Package clock provides the millisecond wall clock that gates ability
// cooldowns and hazard timers.
package clock

import "time"

// Clock reports elapsed milliseconds on a monotonic timeline.
type Clock interface {
	NowMS() int64
}

// Monotonic measures milliseconds since it was created.
type Monotonic struct {
	start time.Time
}

// NewMonotonic creates a clock starting at zero.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// NowMS returns milliseconds since creation.
func (m *Monotonic) NowMS() int64 {
	return time.Since(m.start).Milliseconds()
}

// Manual is a controllable clock for tests and replays
type Manual struct {
	now int64
}

// NewManual creates a manual clock at the given time.
func NewManual(startMS int64) *Manual {
	return &Manual{now: startMS}
}

// NowMS returns the current mocked time
func (m *Manual) NowMS() int64 {
	return m.now
}

// Set sets the current time
func (m *Manual) Set(ms int64) {
	m.now = ms
}

// Advance moves the clock forward by ms milliseconds
func (m *Manual) Advance(ms int64) {
	m.now += ms
}
