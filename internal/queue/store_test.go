package queue_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rosterpost/internal/extract"
	"rosterpost/internal/queue"
)

func newStore(t *testing.T, opts ...queue.Option) *queue.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "posting_queue.json")
	return queue.NewStore(path, time.UTC, nil, opts...)
}

func batch(n int) []extract.Record {
	records := make([]extract.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, extract.Record{
			FullName:   fmt.Sprintf("INMATE %02d", i+1),
			Charge:     "THEFT",
			Bail:       "$1,000.00",
			MugshotRef: fmt.Sprintf("mugshots/inmate_%02d.jpg", i+1),
		})
	}
	return records
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	store := newStore(t)

	snapshot, err := store.Create(batch(10))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snapshot.TotalInmates != 10 || snapshot.PostedCount != 0 {
		t.Fatalf("unexpected counters: total=%d posted=%d", snapshot.TotalInmates, snapshot.PostedCount)
	}
	for i, job := range snapshot.Jobs {
		if job.ID != i+1 {
			t.Fatalf("job %d has id %d, want %d", i, job.ID, i+1)
		}
		if job.Posted || job.PostedAt != nil {
			t.Fatalf("new job %d must be pending", job.ID)
		}
	}

	reloaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(reloaded.Jobs) != 10 {
		t.Fatalf("expected 10 persisted jobs, got %d", len(reloaded.Jobs))
	}
}

func TestCreateOverwritesPriorSnapshot(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(batch(10)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.MarkPosted(1); err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}

	snapshot, err := store.Create(batch(3))
	if err != nil {
		t.Fatalf("Create replace: %v", err)
	}
	if snapshot.TotalInmates != 3 || snapshot.PostedCount != 0 {
		t.Fatalf("replacement must not merge: total=%d posted=%d", snapshot.TotalInmates, snapshot.PostedCount)
	}
}

func TestNextEligibleSkipsPostedAndDoesNotMutate(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(batch(10)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.MarkPosted(3); err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}

	next, err := store.NextEligible(1)
	if err != nil {
		t.Fatalf("NextEligible: %v", err)
	}
	if len(next) != 1 || next[0].ID != 1 {
		t.Fatalf("expected job 1, got %+v", next)
	}

	// Job 3 never comes back.
	all, err := store.NextEligible(10)
	if err != nil {
		t.Fatalf("NextEligible: %v", err)
	}
	for _, job := range all {
		if job.ID == 3 {
			t.Fatal("posted job returned as eligible")
		}
	}

	// Selection must not mutate.
	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.PostedCount != 1 {
		t.Fatalf("NextEligible mutated the snapshot: posted=%d", snapshot.PostedCount)
	}
}

func TestNextEligibleMissingQueueIsEmpty(t *testing.T) {
	store := newStore(t)
	next, err := store.NextEligible(2)
	if err != nil {
		t.Fatalf("NextEligible on missing queue: %v", err)
	}
	if len(next) != 0 {
		t.Fatalf("expected empty result, got %+v", next)
	}
}

func TestMarkPostedCountsAndIdempotency(t *testing.T) {
	now := time.Date(2025, 1, 10, 18, 30, 0, 0, time.UTC)
	store := newStore(t, queue.WithClock(func() time.Time { return now }))
	if _, err := store.Create(batch(10)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	snapshot, err := store.MarkPosted(3)
	if err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}
	if snapshot.PostedCount != 1 {
		t.Fatalf("expected posted count 1, got %d", snapshot.PostedCount)
	}
	job := snapshot.Jobs[2]
	if !job.Posted || job.PostedAt == nil || !job.PostedAt.Equal(now) {
		t.Fatalf("job 3 not stamped correctly: %+v", job)
	}

	// Second call with the same id must not double count or re-stamp.
	now = now.Add(time.Hour)
	again, err := store.MarkPosted(3)
	if err != nil {
		t.Fatalf("MarkPosted repeat: %v", err)
	}
	if again.PostedCount != 1 {
		t.Fatalf("idempotency violated: posted=%d", again.PostedCount)
	}
	if !again.Jobs[2].PostedAt.Equal(now.Add(-time.Hour)) {
		t.Fatal("original posted_at must be preserved")
	}
}

func TestMarkPostedMissingQueueIsHardError(t *testing.T) {
	store := newStore(t)
	if _, err := store.MarkPosted(1); !errors.Is(err, queue.ErrNoQueue) {
		t.Fatalf("expected ErrNoQueue, got %v", err)
	}
}

func TestPruneUnpostedKeepsPostedOnly(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(batch(5)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.MarkPosted(1, 4); err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}

	snapshot, removed, err := store.PruneUnposted()
	if err != nil {
		t.Fatalf("PruneUnposted: %v", err)
	}
	if len(snapshot.Jobs) != 2 || snapshot.TotalInmates != 2 || snapshot.PostedCount != 2 {
		t.Fatalf("unexpected post-prune state: %+v", snapshot)
	}
	if len(removed) != 3 {
		t.Fatalf("expected 3 removed jobs, got %d", len(removed))
	}
	for _, job := range removed {
		if job.Posted {
			t.Fatal("prune must only remove pending jobs")
		}
	}
}

func TestDeleteResourcesForIsBestEffort(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(batch(3)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var removedPaths []string
	err := store.DeleteResourcesFor([]int{1, 3}, func(path string) error {
		removedPaths = append(removedPaths, path)
		if path == "mugshots/inmate_01.jpg" {
			return os.ErrNotExist
		}
		return nil
	})
	if err != nil {
		t.Fatalf("DeleteResourcesFor: %v", err)
	}
	if len(removedPaths) != 2 {
		t.Fatalf("expected 2 delete attempts, got %v", removedPaths)
	}
}

func TestPostedCountInvariantAcrossMutations(t *testing.T) {
	store := newStore(t)
	if _, err := store.Create(batch(8)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, ids := range [][]int{{2}, {5, 7}, {2, 5}, {8}} {
		snapshot, err := store.MarkPosted(ids...)
		if err != nil {
			t.Fatalf("MarkPosted(%v): %v", ids, err)
		}
		posted := 0
		for _, job := range snapshot.Jobs {
			if job.Posted {
				posted++
			}
		}
		if snapshot.PostedCount != posted {
			t.Fatalf("invariant broken after %v: counter=%d actual=%d", ids, snapshot.PostedCount, posted)
		}
	}
}

func TestSnapshotHelpers(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2025, 1, 10, 18, 0, 0, 0, chicago)
	store := newStore(t, queue.WithClock(func() time.Time { return now }))
	if _, err := store.Create(batch(4)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.MarkPosted(1); err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}
	now = now.Add(2 * time.Hour)
	snapshot, err := store.MarkPosted(2)
	if err != nil {
		t.Fatalf("MarkPosted: %v", err)
	}

	if snapshot.PendingCount() != 2 {
		t.Fatalf("unexpected pending count: %d", snapshot.PendingCount())
	}
	last := snapshot.LastPostedAt()
	if last == nil || !last.Equal(now) {
		t.Fatalf("unexpected last posted at: %v", last)
	}
	if got := snapshot.PostedOn(now, chicago); got != 2 {
		t.Fatalf("expected 2 posts today, got %d", got)
	}
	if got := snapshot.PostedOn(now.AddDate(0, 0, 1), chicago); got != 0 {
		t.Fatalf("expected 0 posts tomorrow, got %d", got)
	}
}
