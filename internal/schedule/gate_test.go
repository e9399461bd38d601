package schedule_test

import (
	"testing"
	"time"

	"rosterpost/internal/extract"
	"rosterpost/internal/queue"
	"rosterpost/internal/schedule"
)

var chicago = func() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		panic(err)
	}
	return loc
}()

func limits() schedule.Limits {
	return schedule.Limits{
		DailyLimit:      5,
		WindowStartHour: 9,
		WindowEndHour:   21,
		MinInterval:     2 * time.Hour,
		Location:        chicago,
	}
}

func snapshotWithPosts(times ...time.Time) *queue.Snapshot {
	snapshot := &queue.Snapshot{}
	for i, at := range times {
		stamp := at
		snapshot.Jobs = append(snapshot.Jobs, queue.Job{
			ID:       i + 1,
			Data:     extract.Record{FullName: "DOE, JOHN", MugshotRef: "m.jpg"},
			Posted:   true,
			PostedAt: &stamp,
		})
	}
	snapshot.PostedCount = len(times)
	return snapshot
}

func TestAllowedInsideWindowWithNoHistory(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, chicago)
	decision := schedule.Check(now, nil, limits())
	if !decision.Allowed {
		t.Fatalf("expected allowed, got %s", decision)
	}
}

func TestDailyLimitDenies(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, chicago)
	var posts []time.Time
	for i := 0; i < 5; i++ {
		posts = append(posts, now.Add(-time.Duration(i+3)*time.Hour))
	}
	// All five posts land earlier the same civil day.
	decision := schedule.Check(now, snapshotWithPosts(posts...), limits())
	if decision.Allowed || decision.Reason != schedule.ReasonDailyLimit {
		t.Fatalf("expected daily limit denial, got %s", decision)
	}
}

func TestDailyLimitCountsReferenceTimezoneDates(t *testing.T) {
	// Five posts yesterday must not count against today.
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, chicago)
	var posts []time.Time
	for i := 0; i < 5; i++ {
		posts = append(posts, now.AddDate(0, 0, -1).Add(-time.Duration(i)*time.Hour))
	}
	decision := schedule.Check(now, snapshotWithPosts(posts...), limits())
	if !decision.Allowed {
		t.Fatalf("yesterday's posts must not trip today's limit: %s", decision)
	}
}

func TestWindowBoundaries(t *testing.T) {
	cases := []struct {
		hour    int
		allowed bool
	}{
		{8, false},
		{9, true},   // start inclusive
		{20, true},  // last hour inside
		{21, false}, // end exclusive
		{23, false},
	}
	for _, tc := range cases {
		now := time.Date(2025, 1, 10, tc.hour, 30, 0, 0, chicago)
		decision := schedule.Check(now, nil, limits())
		if decision.Allowed != tc.allowed {
			t.Fatalf("hour %d: expected allowed=%v, got %s", tc.hour, tc.allowed, decision)
		}
		if !tc.allowed && decision.Reason != schedule.ReasonOutsideWindow {
			t.Fatalf("hour %d: unexpected reason %q", tc.hour, decision.Reason)
		}
	}
}

func TestMinIntervalDenies(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, chicago)

	recent := schedule.Check(now, snapshotWithPosts(now.Add(-30*time.Minute)), limits())
	if recent.Allowed || recent.Reason != schedule.ReasonMinInterval {
		t.Fatalf("expected interval denial, got %s", recent)
	}

	stale := schedule.Check(now, snapshotWithPosts(now.Add(-3*time.Hour)), limits())
	if !stale.Allowed {
		t.Fatalf("interval elapsed, expected allowed: %s", stale)
	}
}

func TestChecksAreIndependent(t *testing.T) {
	// Outside the window, the daily limit state is irrelevant: the window
	// check alone denies.
	now := time.Date(2025, 1, 10, 23, 0, 0, 0, chicago)
	decision := schedule.Check(now, snapshotWithPosts(), limits())
	if decision.Allowed {
		t.Fatalf("expected denial outside window, got %s", decision)
	}
}
