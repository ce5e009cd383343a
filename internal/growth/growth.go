// Package growth evaluates crop maturity on demand. There are no running
// timers: maturity is a pure function of planted-at, growth duration, and a
// caller-supplied now, so a paused or reloaded game picks up exactly where
// real elapsed time says it should.
package growth

import "time"

// Maturity returns the growth completion fraction in [0,1], monotonically
// non-decreasing in now and clamped at 1. A non-positive growth duration
// counts as instantly mature.
func Maturity(plantedAt time.Time, growthSeconds float64, now time.Time) float64 {
	if growthSeconds <= 0 {
		return 1
	}
	elapsed := now.Sub(plantedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	m := elapsed / growthSeconds
	if m > 1 {
		return 1
	}
	return m
}

// Mature reports whether a planting is harvestable.
func Mature(plantedAt time.Time, growthSeconds float64, now time.Time) bool {
	return Maturity(plantedAt, growthSeconds, now) >= 1
}
