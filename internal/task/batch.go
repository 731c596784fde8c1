package task

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers bounds the goroutines a BatchScheduler uses when none is configured.
const DefaultBatchWorkers = 4

// Scheduled is one card whose pending grade was applied, with the grade it consumed.
type Scheduled struct {
	Card  *domain.Card
	Grade domain.Grade
}

// BatchResult reports the outcome of one batch.
type BatchResult struct {
	// Scheduled lists the cards that had a grade applied, in input order
	Scheduled []Scheduled

	// Skipped counts cards without a pending grade
	Skipped int

	// Failed counts cards whose pending grade was rejected
	Failed int
}

// BatchScheduler applies pending grades across many cards in parallel.
// The cards handed to one Schedule call must be distinct values.
type BatchScheduler struct {
	srs     srs.Service
	workers int
	logger  *slog.Logger
}

// NewBatchScheduler creates a batch scheduler. A nil service uses the default
// SM-2 parameters and a non-positive worker count uses DefaultBatchWorkers.
func NewBatchScheduler(srsService srs.Service, workers int, logger *slog.Logger) *BatchScheduler {
	if srsService == nil {
		srsService = srs.NewDefaultService()
	}
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchScheduler{
		srs:     srsService,
		workers: workers,
		logger:  logger.With("component", "batch_scheduler"),
	}
}

// Schedule applies every pending grade in cards against today.
//
// A rejected grade on one card does not stop the others; the per-card errors
// are joined into the returned error alongside a complete BatchResult.
// Cancelling ctx stops the batch early and returns ctx.Err() with a nil result.
func (b *BatchScheduler) Schedule(ctx context.Context, cards []*domain.Card, today civil.Date) (*BatchResult, error) {
	applied := make([]bool, len(cards))
	grades := make([]domain.Grade, len(cards))
	errs := make([]error, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, card := range cards {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if card != nil && card.HasPendingGrade() {
				grades[i] = *card.Grade
			}
			ok, err := b.srs.Apply(card, today)
			applied[i] = ok
			errs[i] = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{}
	for i, card := range cards {
		switch {
		case errs[i] != nil:
			result.Failed++
			b.logger.Warn("pending grade rejected", "error", errs[i])
		case applied[i]:
			result.Scheduled = append(result.Scheduled, Scheduled{Card: card, Grade: grades[i]})
		default:
			result.Skipped++
		}
	}

	return result, errors.Join(errs...)
}
