package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosterpost/internal/workflow"
)

func newPostCommand(ctx *commandContext) *cobra.Command {
	var testMode bool
	var force bool

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish the next eligible queued record",
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, cleanup, err := ctx.orchestrator(testMode)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := orchestrator.Post(cmd.Context(), workflow.PostOptions{Force: force})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch result.Outcome {
			case workflow.OutcomePosted:
				fmt.Fprintf(out, "Posted %s (job %d, post id %s)\n", result.Name, result.JobID, result.PostID)
			case workflow.OutcomeGateDenied:
				fmt.Fprintf(out, "Posting window closed: %s\n", result.Reason)
			case workflow.OutcomeQueueEmpty:
				fmt.Fprintln(out, "Queue exhausted; every job has been posted")
			case workflow.OutcomeNoQueue:
				fmt.Fprintln(out, "No posting queue found; run `rosterpost scrape` first")
			case workflow.OutcomeImageBlocked:
				fmt.Fprintf(out, "Every candidate image was blocked (%s); jobs left pending\n", result.Reason)
			default:
				fmt.Fprintf(out, "Outcome: %s\n", result.Outcome)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&testMode, "test", false, "Log the would-be post instead of calling the API")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the scheduling gate")
	return cmd
}
