package commands

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newReviewCmd(a *app) *cobra.Command {
	var date string
	var queue bool

	cmd := &cobra.Command{
		Use:   "review <card-id> <grade>",
		Short: "Grade a card",
		Long: `Record a review grade from 0 (blackout) to 5 (perfect).

By default the grade is applied at once and the card's next review date is
printed. With --queue the grade is stored for the next daily pass instead.

Examples:
  scheduler review 8f4e2a1c-3b5d-4e6f-8a7b-9c0d1e2f3a4b 4
  scheduler review 8f4e2a1c-3b5d-4e6f-8a7b-9c0d1e2f3a4b 2 --queue`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid card ID %q: %w", args[0], err)
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid grade %q: %w", args[1], domain.ErrInvalidGrade)
			}
			grade := domain.Grade(n)

			store, err := a.openDeck(false)
			if err != nil {
				return err
			}
			svc, err := a.reviewService(store)
			if err != nil {
				return err
			}

			if queue {
				if err := svc.QueueAnswer(cmd.Context(), cardID, grade); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued grade %d for %s\n", grade, cardID)
				return nil
			}

			today, err := a.today(date)
			if err != nil {
				return err
			}
			result, err := svc.SubmitAnswer(cmd.Context(), cardID, grade, today)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Next review of %s on %s (in %d day(s))\n",
				result.ID, result.NextReview, result.Interval)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Review date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&queue, "queue", false, "Store the grade for the next daily pass")

	return cmd
}
