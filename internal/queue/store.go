package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rosterpost/internal/extract"
	"rosterpost/internal/fileutil"
	"rosterpost/internal/logging"
)

// ErrNoQueue indicates the snapshot file does not exist. Read operations
// treat this as an empty queue; mutations surface it as a hard error since
// there is nothing to update.
var ErrNoQueue = errors.New("no posting queue")

// Store manages the posting-queue snapshot file. The snapshot is read,
// mutated, and rewritten whole on every change; writes go through an atomic
// rename. A single writer at a time is assumed (the CLI takes a process lock
// around cycles).
type Store struct {
	path   string
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes Store construction.
type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a Store for the snapshot at path. Timestamps are recorded
// in loc, the reference timezone.
func NewStore(path string, loc *time.Location, logger *slog.Logger, opts ...Option) *Store {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	store := &Store{
		path:   path,
		loc:    loc,
		now:    time.Now,
		logger: logger.With(logging.Component("queue")),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Create persists a ranked batch as a fresh queue, replacing any prior
// snapshot. Jobs get 1-based sequential ids in ranked order.
func (s *Store) Create(records []extract.Record) (*Snapshot, error) {
	snapshot := &Snapshot{
		CreatedAt:    s.now().In(s.loc),
		TotalInmates: len(records),
		Jobs:         make([]Job, 0, len(records)),
	}
	for i, record := range records {
		snapshot.Jobs = append(snapshot.Jobs, Job{ID: i + 1, Data: record})
	}

	if err := s.write(snapshot); err != nil {
		return nil, err
	}
	s.logger.Info("queue created",
		logging.Int("jobs", len(snapshot.Jobs)),
		logging.String("path", s.path))
	return snapshot, nil
}

// Load reads the current snapshot. Returns ErrNoQueue when no snapshot file
// exists.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoQueue
		}
		return nil, fmt.Errorf("read queue snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse queue snapshot: %w", err)
	}
	return &snapshot, nil
}

// NextEligible returns the first batchSize unposted jobs in enqueue order
// without mutating anything. A missing queue is a legitimate empty state.
func (s *Store) NextEligible(batchSize int) ([]Job, error) {
	if batchSize <= 0 {
		return nil, nil
	}
	snapshot, err := s.Load()
	if err != nil {
		if errors.Is(err, ErrNoQueue) {
			return nil, nil
		}
		return nil, err
	}

	pending := snapshot.Pending()
	if len(pending) > batchSize {
		pending = pending[:batchSize]
	}
	return pending, nil
}

// MarkPosted flags the given jobs as posted with the current timestamp and
// rewrites the snapshot. Already-posted jobs keep their original timestamp,
// so repeated calls are idempotent. Returns ErrNoQueue when no snapshot
// exists.
func (s *Store) MarkPosted(ids ...int) (*Snapshot, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, err
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	now := s.now().In(s.loc)
	marked := 0
	for i := range snapshot.Jobs {
		job := &snapshot.Jobs[i]
		if _, ok := wanted[job.ID]; !ok || job.Posted {
			continue
		}
		job.Posted = true
		stamp := now
		job.PostedAt = &stamp
		marked++
	}
	snapshot.recount()

	if err := s.write(snapshot); err != nil {
		return nil, err
	}
	s.logger.Info("jobs marked posted",
		logging.Int("marked", marked),
		logging.Int("posted_total", snapshot.PostedCount),
		logging.Int("queue_total", snapshot.TotalInmates))
	return snapshot, nil
}

// PruneUnposted removes every pending job, keeping only posted history.
// It returns the removed jobs so the caller can release their mugshot
// resources. Returns ErrNoQueue when no snapshot exists.
func (s *Store) PruneUnposted() (*Snapshot, []Job, error) {
	snapshot, err := s.Load()
	if err != nil {
		return nil, nil, err
	}

	kept := make([]Job, 0, snapshot.PostedCount)
	var removed []Job
	for _, job := range snapshot.Jobs {
		if job.Posted {
			kept = append(kept, job)
		} else {
			removed = append(removed, job)
		}
	}
	snapshot.Jobs = kept
	snapshot.TotalInmates = len(kept)
	snapshot.recount()

	if err := s.write(snapshot); err != nil {
		return nil, nil, err
	}
	s.logger.Info("pruned unposted jobs",
		logging.Int("removed", len(removed)),
		logging.Int("kept", len(kept)))
	return snapshot, removed, nil
}

// DeleteResourcesFor removes the mugshot files tied to the given job ids
// using the provided remove func. Individual failures are logged and
// skipped; the orphan sweep catches anything left behind.
func (s *Store) DeleteResourcesFor(ids []int, remove func(path string) error) error {
	snapshot, err := s.Load()
	if err != nil {
		return err
	}

	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	for _, job := range snapshot.Jobs {
		if _, ok := wanted[job.ID]; !ok || !job.Data.HasMugshot() {
			continue
		}
		if err := remove(job.Data.MugshotRef); err != nil {
			s.logger.Warn("mugshot cleanup failed",
				logging.Int(logging.FieldJobID, job.ID),
				logging.String("file", job.Data.MugshotRef),
				logging.Error(err))
		}
	}
	return nil
}

// Remove deletes the snapshot file itself. Missing files are ignored.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove queue snapshot: %w", err)
	}
	return nil
}

func (s *Store) write(snapshot *Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal queue snapshot: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist queue snapshot: %w", err)
	}
	return nil
}
