package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/service/card_review"
	"github.com/spf13/cobra"
)

func newDueCmd(a *app) *cobra.Command {
	var date string
	var asJSON bool
	var next bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List cards due for review",
		Long: `List the cards whose next review is on or before the given day.

Examples:
  scheduler due
  scheduler due --date 2024-03-01 --json
  scheduler due --next`,
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
			svc, err := a.reviewService(store)
			if err != nil {
				return err
			}

			var due []*domain.Card
			if next {
				card, err := svc.GetNextCard(cmd.Context(), today)
				switch {
				case errors.Is(err, card_review.ErrNoCardsDue):
				case err != nil:
					return err
				default:
					due = []*domain.Card{card}
				}
			} else {
				due, err = svc.DueCards(cmd.Context(), today)
				if err != nil {
					return err
				}
			}

			if asJSON {
				if due == nil {
					due = []*domain.Card{}
				}
				data, err := json.MarshalIndent(due, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
				return nil
			}

			if len(due) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No cards due on %s\n", today)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tNEXT REVIEW\tREPS\tINTERVAL\tQUEUED\tQUESTION\n")
			for _, card := range due {
				queued := "-"
				if card.HasPendingGrade() {
					queued = fmt.Sprintf("%d", *card.Grade)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
					card.ID, card.NextReview, card.Repetitions, card.Interval, queued,
					truncate(card.Question, 50))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to check, as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print cards as JSON")
	cmd.Flags().BoolVar(&next, "next", false, "Only show the next card to review")

	return cmd
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
