// Package schedule decides whether a post is currently allowed.
//
// The gate is pure: it inspects wall-clock time and queue history and never
// mutates anything. All calendar math happens in the reference timezone (the
// scraped jurisdiction's civil time) so the posting window tracks the target
// audience's clock regardless of where the process runs.
package schedule

import (
	"fmt"
	"time"

	"rosterpost/internal/queue"
)

// Limits configures the three independent posting checks.
type Limits struct {
	DailyLimit      int
	WindowStartHour int
	WindowEndHour   int
	MinInterval     time.Duration
	Location        *time.Location
}

// Decision is the gate's verdict. When denied, Reason names the failed check.
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonDailyLimit    = "daily_limit_reached"
	ReasonOutsideWindow = "outside_posting_window"
	ReasonMinInterval   = "min_interval_not_elapsed"
)

// Check evaluates the gate against the current snapshot. Any single failing
// check is sufficient to deny. A nil snapshot means no queue history and
// only the window check applies.
func Check(now time.Time, snapshot *queue.Snapshot, limits Limits) Decision {
	loc := limits.Location
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	if limits.DailyLimit > 0 && snapshot.PostedOn(local, loc) >= limits.DailyLimit {
		return Decision{Reason: ReasonDailyLimit}
	}

	hour := local.Hour()
	if hour < limits.WindowStartHour || hour >= limits.WindowEndHour {
		return Decision{Reason: ReasonOutsideWindow}
	}

	if limits.MinInterval > 0 {
		if last := snapshot.LastPostedAt(); last != nil && now.Sub(*last) < limits.MinInterval {
			return Decision{Reason: ReasonMinInterval}
		}
	}

	return Decision{Allowed: true}
}

// String renders a decision for logs and status output.
func (d Decision) String() string {
	if d.Allowed {
		return "allowed"
	}
	return fmt.Sprintf("denied (%s)", d.Reason)
}
