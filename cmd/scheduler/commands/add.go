package commands

import (
	"fmt"

	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var question, answer, source, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to the deck",
		Long: `Add a new card to the deck, creating the deck file if needed.
The card is due on the day it is added.

Examples:
  scheduler add --question "Capital of France?" --answer Paris
  scheduler add -q "SM-2 minimum ease?" -a 1.3 --source post-42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := a.today(date)
			if err != nil {
				return err
			}

			card, err := domain.NewCard(question, answer, source, today)
			if err != nil {
				return fmt.Errorf("invalid card: %w", err)
			}

			store, err := a.openDeck(true)
			if err != nil {
				return err
			}
			if err := store.Add(cmd.Context(), card); err != nil {
				return fmt.Errorf("adding card: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", card.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "Question text (required)")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "Answer text (required)")
	cmd.Flags().StringVar(&source, "source", "", "ID of the post the card was generated from")
	cmd.Flags().StringVar(&date, "date", "", "Creation date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}
