package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rosterpost/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently archived scrape records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Archive.Enabled {
				fmt.Fprintln(out, "Archive disabled; enable [archive] in the config to record scrape history")
				return nil
			}
			store, err := ctx.openArchive(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "Archive is empty")
				return nil
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.ID, 10),
					textutil.Truncate(entry.FullName, 30),
					textutil.Truncate(entry.Charge, 36),
					bailCell(entry.Bail),
					strconv.Itoa(entry.Priority),
					entry.ScrapedAt.In(loc).Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Name", "Charge", "Bail", "Priority", "Scraped At"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")
	return cmd
}
