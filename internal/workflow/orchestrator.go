// Package workflow drives the two pipeline cycles. The scrape cycle walks
// detail views into a fresh ranked queue; the post cycle advances that queue
// by at most one publication per invocation. Both run under a file lock so
// overlapping cron invocations cannot interleave queue writes.
package workflow

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"rosterpost/internal/archive"
	"rosterpost/internal/caption"
	"rosterpost/internal/config"
	"rosterpost/internal/extract"
	"rosterpost/internal/logging"
	"rosterpost/internal/mugshots"
	"rosterpost/internal/publish"
	"rosterpost/internal/queue"
	"rosterpost/internal/roster"
	"rosterpost/internal/visiongate"
)

// ErrCycleLocked reports that another invocation holds the cycle lock.
var ErrCycleLocked = errors.New("another rosterpost cycle is already running")

// Deps are the orchestrator's collaborators. Tests substitute in-memory
// implementations; the CLI wires the real ones from configuration.
type Deps struct {
	Config    *config.Config
	Logger    *slog.Logger
	Source    roster.Source
	Extractor *extract.Extractor
	Queue     *queue.Store
	Mugshots  *mugshots.Store
	Archive   *archive.Store
	Gate      visiongate.Gate
	Publisher publish.Publisher
	Composer  *caption.Composer
	Now       func() time.Time
}

// Orchestrator coordinates one cycle per call.
type Orchestrator struct {
	cfg       *config.Config
	logger    *slog.Logger
	source    roster.Source
	extractor *extract.Extractor
	store     *queue.Store
	mugshots  *mugshots.Store
	archive   *archive.Store
	gate      visiongate.Gate
	publisher publish.Publisher
	composer  *caption.Composer
	now       func() time.Time
	loc       *time.Location
}

func New(deps Deps) (*Orchestrator, error) {
	if deps.Config == nil {
		return nil, errors.New("workflow: config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	loc, err := deps.Config.Location()
	if err != nil {
		return nil, fmt.Errorf("load reference timezone: %w", err)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	gate := deps.Gate
	if gate == nil {
		gate = visiongate.Noop{}
	}
	composer := deps.Composer
	if composer == nil {
		c := deps.Config.Caption
		composer = caption.New(c.Fields, c.Location, c.Hashtags, c.AlertLabel)
	}
	return &Orchestrator{
		cfg:       deps.Config,
		logger:    logger.With(logging.Component("workflow")),
		source:    deps.Source,
		extractor: deps.Extractor,
		store:     deps.Queue,
		mugshots:  deps.Mugshots,
		archive:   deps.Archive,
		gate:      gate,
		publisher: deps.Publisher,
		composer:  composer,
		now:       now,
		loc:       loc,
	}, nil
}

// runExclusive runs fn while holding the cycle lock. A held lock fails fast
// instead of waiting; cron will come back around. The lock file lives in the
// data directory, so that directory must exist before the lock is opened.
func (o *Orchestrator) runExclusive(fn func() error) error {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(o.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire cycle lock: %w", err)
	}
	if !locked {
		return ErrCycleLocked
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func fallbackBookingName() string {
	return "Booking " + uuid.NewString()[:8]
}

func dedupCutoff(now time.Time, windowDays int) time.Time {
	return now.AddDate(0, 0, -windowDays)
}
