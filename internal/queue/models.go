package queue

import (
	"time"

	"rosterpost/internal/extract"
)

// Job is one persisted unit of "a record waiting to be posted". Jobs are
// created in ranked batches, mutated only by MarkPosted, and removed only by
// PruneUnposted.
type Job struct {
	ID       int            `json:"id"`
	Data     extract.Record `json:"data"`
	Posted   bool           `json:"posted"`
	PostedAt *time.Time     `json:"posted_at"`
}

// Snapshot is the whole persisted queue state. It is replaced atomically on
// every mutation; PostedCount is recomputed on every write so it always
// equals the number of posted jobs.
type Snapshot struct {
	CreatedAt    time.Time `json:"created_at"`
	TotalInmates int       `json:"total_inmates"`
	PostedCount  int       `json:"posted_count"`
	Jobs         []Job     `json:"inmates"`
}

// PendingCount returns the number of jobs not yet posted.
func (s *Snapshot) PendingCount() int {
	if s == nil {
		return 0
	}
	return len(s.Jobs) - s.PostedCount
}

// Pending returns the unposted jobs in enqueue order.
func (s *Snapshot) Pending() []Job {
	if s == nil {
		return nil
	}
	pending := make([]Job, 0, s.PendingCount())
	for _, job := range s.Jobs {
		if !job.Posted {
			pending = append(pending, job)
		}
	}
	return pending
}

// LastPostedAt returns the most recent posting timestamp, or nil when nothing
// has been posted.
func (s *Snapshot) LastPostedAt() *time.Time {
	if s == nil {
		return nil
	}
	var last *time.Time
	for _, job := range s.Jobs {
		if job.Posted && job.PostedAt != nil {
			if last == nil || job.PostedAt.After(*last) {
				last = job.PostedAt
			}
		}
	}
	return last
}

// PostedOn counts jobs posted on the given calendar date in loc.
func (s *Snapshot) PostedOn(date time.Time, loc *time.Location) int {
	if s == nil {
		return 0
	}
	wantYear, wantMonth, wantDay := date.In(loc).Date()
	count := 0
	for _, job := range s.Jobs {
		if !job.Posted || job.PostedAt == nil {
			continue
		}
		year, month, day := job.PostedAt.In(loc).Date()
		if year == wantYear && month == wantMonth && day == wantDay {
			count++
		}
	}
	return count
}

func (s *Snapshot) recount() {
	count := 0
	for _, job := range s.Jobs {
		if job.Posted {
			count++
		}
	}
	s.PostedCount = count
}
