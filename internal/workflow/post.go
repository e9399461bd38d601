package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rosterpost/internal/logging"
	"rosterpost/internal/publish"
	"rosterpost/internal/queue"
	"rosterpost/internal/schedule"
)

// PostOptions tune one post cycle.
type PostOptions struct {
	// Force skips the scheduling gate. The vision gate still runs.
	Force bool
}

// Post outcomes.
const (
	OutcomePosted       = "posted"
	OutcomeGateDenied   = "gate_denied"
	OutcomeQueueEmpty   = "queue_empty"
	OutcomeNoQueue      = "no_queue"
	OutcomeImageBlocked = "image_blocked"
)

// PostResult summarizes one post cycle.
type PostResult struct {
	Outcome string
	Reason  string
	JobID   int
	Name    string
	PostID  string
}

// Post runs one post cycle: check the schedule, take the next pending job,
// screen its image, publish, and commit. Every denial leaves the job
// pending so the next invocation retries it.
func (o *Orchestrator) Post(ctx context.Context, opts PostOptions) (*PostResult, error) {
	result := &PostResult{}
	err := o.runExclusive(func() error {
		return o.post(ctx, opts, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) post(ctx context.Context, opts PostOptions, result *PostResult) error {
	snapshot, err := o.store.Load()
	if errors.Is(err, queue.ErrNoQueue) {
		result.Outcome = OutcomeNoQueue
		o.logger.Info("no posting queue, run a scrape first")
		return nil
	}
	if err != nil {
		return err
	}

	now := o.now()
	if !opts.Force {
		decision := schedule.Check(now, snapshot, o.limits())
		if !decision.Allowed {
			result.Outcome = OutcomeGateDenied
			result.Reason = decision.Reason
			o.logger.Info("posting denied",
				logging.Decision("deny"),
				logging.Reason(decision.Reason))
			return nil
		}
	}

	batch := o.cfg.Posting.BatchSize
	if batch <= 0 {
		batch = 1
	}
	jobs, err := o.store.NextEligible(batch)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		result.Outcome = OutcomeQueueEmpty
		o.logger.Info("posting queue exhausted",
			logging.Int("posted", snapshot.PostedCount))
		return nil
	}

	// The batch is a candidate window, not a burst: a job whose image is
	// blocked stays pending and the next candidate is tried, so one bad
	// photo cannot stall the queue. At most one job is published per cycle.
	var job queue.Job
	approved := false
	for _, candidate := range jobs {
		ok, reason := o.screenImage(ctx, candidate)
		if ok {
			job = candidate
			approved = true
			break
		}
		result.Reason = reason
		o.logger.Info("image blocked",
			logging.Int(logging.FieldJobID, candidate.ID),
			logging.String(logging.FieldName, candidate.Data.FullName),
			logging.Decision("deny"),
			logging.Reason(reason))
	}
	if !approved {
		result.Outcome = OutcomeImageBlocked
		return nil
	}
	result.JobID = job.ID
	result.Name = job.Data.FullName

	text := o.composer.Compose(job.Data, snapshot.CreatedAt.In(o.loc).Format("January 2, 2006"))
	imageURL := publish.ImageURL(o.cfg.Posting.ImageBaseURL, job.Data.MugshotRef)

	postID, err := o.publisher.Publish(ctx, imageURL, text)
	if err != nil {
		return fmt.Errorf("publish job %d (%s): %w", job.ID, job.Data.FullName, err)
	}

	if _, err := o.store.MarkPosted(job.ID); err != nil {
		// The post went out but the commit failed; surface it loudly since
		// the job would otherwise be posted twice.
		return fmt.Errorf("mark job %d posted after successful publish: %w", job.ID, err)
	}
	o.cleanupMugshot(job)

	result.Outcome = OutcomePosted
	result.PostID = postID
	o.logger.Info("job posted",
		logging.Int(logging.FieldJobID, job.ID),
		logging.String(logging.FieldName, job.Data.FullName),
		logging.String("post_id", postID))
	return nil
}

// screenImage runs the vision gate. Gate failures approve by default so an
// optional dependency being down never wedges the queue.
func (o *Orchestrator) screenImage(ctx context.Context, job queue.Job) (bool, string) {
	if !job.Data.HasMugshot() {
		return false, "missing mugshot"
	}
	assessment, err := o.gate.Assess(ctx, job.Data.MugshotRef)
	if err != nil {
		o.logger.Warn("vision gate unavailable, approving",
			logging.Int(logging.FieldJobID, job.ID),
			logging.Error(err))
		return true, ""
	}
	if !assessment.Approved {
		return false, assessment.Reason
	}
	return true, ""
}

// cleanupMugshot deletes the posted job's image. Best effort; the orphan
// sweep in clean handles leftovers.
func (o *Orchestrator) cleanupMugshot(job queue.Job) {
	if o.mugshots == nil || !job.Data.HasMugshot() {
		return
	}
	if err := o.mugshots.Delete(job.Data.MugshotRef); err != nil {
		o.logger.Warn("mugshot cleanup failed",
			logging.Int(logging.FieldJobID, job.ID),
			logging.Error(err))
	}
}

func (o *Orchestrator) limits() schedule.Limits {
	s := o.cfg.Schedule
	return schedule.Limits{
		DailyLimit:      s.DailyLimit,
		WindowStartHour: s.WindowStartHour,
		WindowEndHour:   s.WindowEndHour,
		MinInterval:     time.Duration(s.MinIntervalHours) * time.Hour,
		Location:        o.loc,
	}
}
