package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/phrazzld/scry-scheduler/internal/task"
	"github.com/spf13/cobra"
)

func newDailyCmd(a *app) *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Run one daily scheduling pass",
		Long: `Apply every queued grade in the deck, then rewrite the deck file.

Cards without a queued grade are left unchanged, so running the pass twice
on the same day is harmless.

Examples:
  scheduler daily
  scheduler daily --deck cards.json --date 2024-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.today(date)
			if err != nil {
				return err
			}

			store, err := a.openDeck(false)
			if err != nil {
				return err
			}

			job, err := task.NewDailyJob(today, store, a.batchScheduler(), a.emitter(), a.logger)
			if err != nil {
				return err
			}

			summary, runErr := job.Run(cmd.Context())
			if summary != nil {
				if err := printSummary(cmd.OutOrStdout(), summary, asJSON); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to schedule for, as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

func printSummary(w io.Writer, s *task.Summary, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(w, "%s\n", data)
		return nil
	}

	fmt.Fprintf(w, "Daily pass for %s\n", s.Date)
	fmt.Fprintf(w, "  cards:     %d\n", s.Total)
	fmt.Fprintf(w, "  scheduled: %d\n", s.Scheduled)
	fmt.Fprintf(w, "  skipped:   %d\n", s.Skipped)
	fmt.Fprintf(w, "  failed:    %d\n", s.Failed)
	fmt.Fprintf(w, "  due today: %d\n", s.Due)
	return nil
}
