package workflow

import (
	"context"
	"errors"
	"fmt"

	"rosterpost/internal/export"
	"rosterpost/internal/extract"
	"rosterpost/internal/logging"
	"rosterpost/internal/rank"
	"rosterpost/internal/roster"
)

// ScrapeOptions tune one scrape cycle.
type ScrapeOptions struct {
	// Limit caps how many detail views are visited; zero uses the configured
	// inmate limit.
	Limit int
	// DryRun extracts and ranks but writes nothing.
	DryRun bool
}

// ScrapeResult summarizes one scrape cycle.
type ScrapeResult struct {
	Visited    int
	Failed     int
	Admissible int
	Rejected   int
	Deduped    int
	Queued     int
	Records    []extract.Record
}

// Scrape runs one full scrape cycle: visit detail views, extract and screen
// records, drop recent repeat bookings, rank, and replace the queue.
func (o *Orchestrator) Scrape(ctx context.Context, opts ScrapeOptions) (*ScrapeResult, error) {
	result := &ScrapeResult{}
	err := o.runExclusive(func() error {
		return o.scrape(ctx, opts, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (o *Orchestrator) scrape(ctx context.Context, opts ScrapeOptions, result *ScrapeResult) error {
	limit := opts.Limit
	if limit <= 0 {
		limit = o.cfg.Roster.InmateLimit
	}

	var admissible []extract.Record
	for result.Visited < limit {
		view, err := o.source.Next(ctx)
		if errors.Is(err, roster.ErrNoMoreViews) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// One bad page never aborts the walk.
			result.Failed++
			o.logger.Warn("detail view fetch failed", logging.Error(err))
			continue
		}
		result.Visited++

		record := o.extractor.Extract(view.VisibleText(), view.Images())
		if record.FullName == "" {
			record.FullName = fallbackBookingName()
			o.logger.Debug("name absent, using booking fallback",
				logging.String(logging.FieldName, record.FullName))
		}

		ok, issues := extract.Admissible(record)
		if !ok {
			result.Rejected++
			o.logger.Info("record rejected",
				logging.String(logging.FieldName, record.FullName),
				logging.Decision("reject"),
				logging.Reason(joinIssues(issues)))
			continue
		}

		if o.dedup(ctx, record) {
			result.Deduped++
			o.logger.Info("record skipped",
				logging.String(logging.FieldName, record.FullName),
				logging.Decision("skip"),
				logging.Reason("recently seen"))
			continue
		}

		result.Admissible++
		o.logger.Info("record accepted",
			logging.String(logging.FieldName, record.FullName),
			logging.Decision("accept"),
			logging.Int("priority", extract.Priority(record)))
		admissible = append(admissible, record)
	}

	strategy, err := rank.ParseStrategy(o.cfg.Ranking.Strategy)
	if err != nil {
		return err
	}
	ranked := rank.Rank(admissible, strategy, o.cfg.Ranking.TopN)
	result.Records = ranked
	result.Queued = len(ranked)

	if opts.DryRun {
		o.logger.Info("dry run, queue not written",
			logging.Int("ranked", len(ranked)))
		return nil
	}

	if _, err := o.store.Create(ranked); err != nil {
		return fmt.Errorf("write posting queue: %w", err)
	}
	// The export covers the whole admissible set; only the queue is truncated.
	if err := export.WriteCSV(o.cfg.ExportPath(), admissible); err != nil {
		return fmt.Errorf("write roster export: %w", err)
	}
	if o.archive != nil {
		if err := o.archive.RecordCycle(ctx, o.now(), admissible); err != nil {
			return fmt.Errorf("archive scrape cycle: %w", err)
		}
	}

	o.logger.Info("scrape cycle complete",
		logging.Int("visited", result.Visited),
		logging.Int("admissible", result.Admissible),
		logging.Int("queued", result.Queued))
	return nil
}

// dedup reports whether the record's name was archived inside the
// configured window. Without an archive every record is fresh.
func (o *Orchestrator) dedup(ctx context.Context, record extract.Record) bool {
	if o.archive == nil || !o.cfg.Archive.Enabled || o.cfg.Archive.DedupWindowDays <= 0 {
		return false
	}
	cutoff := dedupCutoff(o.now(), o.cfg.Archive.DedupWindowDays)
	seen, err := o.archive.RecentlySeen(ctx, record.FullName, cutoff)
	if err != nil {
		o.logger.Warn("dedup lookup failed", logging.Error(err))
		return false
	}
	return seen
}

func joinIssues(issues []string) string {
	if len(issues) == 0 {
		return "inadmissible"
	}
	out := issues[0]
	for _, issue := range issues[1:] {
		out += "; " + issue
	}
	return out
}
