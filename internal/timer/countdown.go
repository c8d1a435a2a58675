// Package timer provides the wall-clock countdown and cancellable periodic tasks shared by
// the token lifecycle manager and the transaction workflows.
package timer

import (
	"fmt"
	"time"
)

// Countdown measures the time left until an absolute target instant.
// Remaining time is always recomputed from the clock, never accumulated from ticks.
type Countdown struct {
	Target time.Time
}

// NewCountdown creates a countdown targeted at the given instant.
func NewCountdown(target time.Time) Countdown {
	return Countdown{Target: target}
}

// Remaining returns the time left at now, clamped at zero.
func (c Countdown) Remaining(now time.Time) time.Duration {
	remaining := c.Target.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RemainingSeconds returns the whole seconds left at now, rounded down.
func (c Countdown) RemainingSeconds(now time.Time) int {
	return int(c.Remaining(now) / time.Second)
}

// Expired reports whether no whole second remains at now.
func (c Countdown) Expired(now time.Time) bool {
	return c.RemainingSeconds(now) == 0
}

// Severity is a presentation tier derived from the seconds left on a countdown.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityUrgent  Severity = "urgent"
)

// SeverityFor maps remaining seconds to a severity tier.
func SeverityFor(seconds int) Severity {
	switch {
	case seconds <= 10:
		return SeverityUrgent
	case seconds <= 30:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// FormatSeconds renders seconds as m:ss.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
