package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosterpost/internal/workflow"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Walk the roster and rebuild the posting queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, cleanup, err := ctx.orchestrator(false)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := orchestrator.Scrape(cmd.Context(), workflow.ScrapeOptions{
				Limit:  limit,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Visited %d detail views (%d fetch failures)\n", result.Visited, result.Failed)
			fmt.Fprintf(out, "Admissible: %d  Rejected: %d  Recently seen: %d\n",
				result.Admissible, result.Rejected, result.Deduped)
			if dryRun {
				fmt.Fprintf(out, "Dry run: %d records ranked, nothing written\n", result.Queued)
				return nil
			}
			fmt.Fprintf(out, "Queued %d records for posting\n", result.Queued)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum detail views to visit (0 uses the configured limit)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and rank without writing the queue")
	return cmd
}
