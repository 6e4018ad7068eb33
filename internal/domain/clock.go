package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps run reports and times renders. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time { return clock.Now() }

// Since reports the time elapsed on the package clock since t.
func Since(t time.Time) time.Duration { return clock.Since(t) }
