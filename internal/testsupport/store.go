package testsupport

import (
	"testing"
	"time"

	"rosterpost/internal/config"
	"rosterpost/internal/extract"
	"rosterpost/internal/queue"
)

// NewQueueStore opens the queue store for a test config.
func NewQueueStore(t testing.TB, cfg *config.Config, opts ...queue.Option) *queue.Store {
	t.Helper()

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("config location: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return queue.NewStore(cfg.QueuePath(), loc, nil, opts...)
}

// SeedQueue writes a fresh queue containing the given records.
func SeedQueue(t testing.TB, store *queue.Store, records ...extract.Record) *queue.Snapshot {
	t.Helper()

	snapshot, err := store.Create(records)
	if err != nil {
		t.Fatalf("seed queue: %v", err)
	}
	return snapshot
}

// MarkPosted marks the given ids posted and fails the test on error.
func MarkPosted(t testing.TB, store *queue.Store, ids ...int) *queue.Snapshot {
	t.Helper()

	snapshot, err := store.MarkPosted(ids...)
	if err != nil {
		t.Fatalf("mark posted: %v", err)
	}
	return snapshot
}

// FixedClock returns a queue option pinning the store's time source.
func FixedClock(at time.Time) queue.Option {
	return queue.WithClock(func() time.Time { return at })
}
