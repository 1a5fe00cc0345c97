package pong

import (
	"math"
	"time"
)

// DefaultMaxDT caps a single tick so a stalled host does not jump the match
// ahead. Step slices long ticks itself, so the cap is not needed for collisions.
const DefaultMaxDT = 0.1

// SanitizeDT maps NaN, infinities and negative values to 0 and caps dt at max.
// A non-positive max disables the cap.
func SanitizeDT(dt, max float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	if max > 0 && dt > max {
		return max
	}
	return dt
}

// Clock turns wall-clock time into per-tick deltas for Sim.Step.
type Clock struct {
	MaxDT float64

	now  func() time.Time
	last time.Time
}

// NewClock returns a Clock reading from now; a nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{MaxDT: DefaultMaxDT, now: now}
}

// Tick returns the seconds since the previous call. The first call returns 0.
func (c *Clock) Tick() float64 {
	t := c.now()
	if c.last.IsZero() {
		c.last = t
		return 0
	}
	dt := t.Sub(c.last).Seconds()
	c.last = t
	return SanitizeDT(dt, c.MaxDT)
}
