package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rosterpost/internal/logging"
	"rosterpost/internal/mugshots"
	"rosterpost/internal/queue"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var unposted bool
	var posted bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove queue state and stored mugshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := 0
			for _, flag := range []bool{all, unposted, posted} {
				if flag {
					selected++
				}
			}
			if selected != 1 {
				return errors.New("choose exactly one of --all, --unposted, or --posted")
			}

			store, cfg, err := ctx.queueStore()
			if err != nil {
				return err
			}
			mugshotStore := mugshots.New(cfg.Paths.MugshotDir)
			out := cmd.OutOrStdout()

			switch {
			case all:
				if err := store.Remove(); err != nil {
					return err
				}
				removed, err := mugshotStore.SweepAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed queue and %d stored mugshots\n", removed)

			case unposted:
				_, removed, err := store.PruneUnposted()
				if errors.Is(err, queue.ErrNoQueue) {
					fmt.Fprintln(out, "No posting queue found; nothing to prune")
					return nil
				}
				if err != nil {
					return err
				}
				logger, err := ctx.ensureLogger()
				if err != nil {
					return err
				}
				for _, job := range removed {
					if !job.Data.HasMugshot() {
						continue
					}
					if err := mugshotStore.Delete(job.Data.MugshotRef); err != nil {
						logger.Warn("mugshot cleanup failed",
							logging.Int(logging.FieldJobID, job.ID),
							logging.String("file", job.Data.MugshotRef),
							logging.Error(err))
					}
				}
				fmt.Fprintf(out, "Pruned %d unposted jobs\n", len(removed))

			case posted:
				snapshot, err := store.Load()
				if errors.Is(err, queue.ErrNoQueue) {
					fmt.Fprintln(out, "No posting queue found; nothing to clean")
					return nil
				}
				if err != nil {
					return err
				}
				var ids []int
				for _, job := range snapshot.Jobs {
					if job.Posted {
						ids = append(ids, job.ID)
					}
				}
				if err := store.DeleteResourcesFor(ids, mugshotStore.Delete); err != nil {
					return err
				}
				fmt.Fprintf(out, "Cleaned leftover images for %d posted jobs\n", len(ids))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete the queue file and every stored mugshot")
	cmd.Flags().BoolVar(&unposted, "unposted", false, "Drop pending jobs and their mugshots, keeping posting history")
	cmd.Flags().BoolVar(&posted, "posted", false, "Delete leftover mugshots for already-posted jobs")
	return cmd
}
