package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rosterpost/internal/extract"
	"rosterpost/internal/queue"
	"rosterpost/internal/textutil"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the posting queue",
	}
	queueCmd.AddCommand(newQueueStatusCommand(ctx))
	queueCmd.AddCommand(newQueueShowCommand(ctx))
	return queueCmd
}

func newQueueStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize queue progress and what posts next",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.queueStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			snapshot, err := store.Load()
			if errors.Is(err, queue.ErrNoQueue) {
				fmt.Fprintln(out, "No posting queue found; run `rosterpost scrape` first")
				return nil
			}
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Queue created: %s\n", snapshot.CreatedAt.In(loc).Format("2006-01-02 15:04 MST"))
			fmt.Fprintf(out, "Jobs: %d total, %d posted, %d pending\n",
				snapshot.TotalInmates, snapshot.PostedCount, snapshot.PendingCount())
			if last := snapshot.LastPostedAt(); last != nil {
				fmt.Fprintf(out, "Last posted: %s\n", last.In(loc).Format("2006-01-02 15:04 MST"))
			}

			pending := snapshot.Pending()
			if len(pending) == 0 {
				return nil
			}
			const nextUp = 3
			fmt.Fprintln(out, "Next up:")
			for i, job := range pending {
				if i >= nextUp {
					fmt.Fprintf(out, "  … and %d more\n", len(pending)-nextUp)
					break
				}
				fmt.Fprintf(out, "  %d. %s\n", job.ID, job.Data.FullName)
			}
			return nil
		},
	}
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every queued job",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := ctx.queueStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			snapshot, err := store.Load()
			if errors.Is(err, queue.ErrNoQueue) {
				fmt.Fprintln(out, "No posting queue found; run `rosterpost scrape` first")
				return nil
			}
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(snapshot.Jobs))
			for _, job := range snapshot.Jobs {
				postedAt := ""
				if job.PostedAt != nil {
					postedAt = job.PostedAt.In(loc).Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{
					strconv.Itoa(job.ID),
					textutil.Truncate(job.Data.FullName, 30),
					textutil.Truncate(job.Data.Charge, 36),
					bailCell(job.Data.Bail),
					yesNo(job.Posted),
					postedAt,
				})
			}
			headers := []string{"ID", "Name", "Charge", "Bail", "Posted", "Posted At"}
			if !isTerminal(out) {
				for _, row := range rows {
					fmt.Fprintln(out, strings.Join(row, "\t"))
				}
				return nil
			}
			fmt.Fprintln(out, renderTable(
				headers,
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

var tablePrinter = message.NewPrinter(language.English)

// bailCell renders bail text for the table: parseable amounts get comma
// grouping, the no-bail sentinel reads as HOLD, everything else passes
// through.
func bailCell(bail string) string {
	if bail == "" {
		return ""
	}
	amount := extract.ParseBailAmount(bail)
	switch {
	case amount == extract.NoBailAmount:
		return "HOLD"
	case amount > 0:
		return tablePrinter.Sprintf("$%.2f", amount)
	default:
		return bail
	}
}
