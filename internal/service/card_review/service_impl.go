package card_review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// cardReviewServiceImpl implements the CardReviewService interface.
type cardReviewServiceImpl struct {
	cardRepo   CardRepository
	srsService srs.Service
	emitter    events.EventEmitter
	logger     *slog.Logger

	// mu serialises read-modify-write cycles on the repository
	mu sync.Mutex
}

// NewCardReviewService creates a new CardReviewService implementation.
// emitter may be nil, in which case no events are published.
func NewCardReviewService(
	cardRepo CardRepository,
	srsService srs.Service,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CardReviewService, error) {
	if cardRepo == nil {
		return nil, errors.New("cardRepo cannot be nil")
	}
	if srsService == nil {
		return nil, errors.New("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &cardReviewServiceImpl{
		cardRepo:   cardRepo,
		srsService: srsService,
		emitter:    emitter,
		logger:     logger.With(slog.String("component", "card_review_service")),
	}, nil
}

// SubmitAnswer implements CardReviewService.SubmitAnswer.
func (s *cardReviewServiceImpl) SubmitAnswer(
	ctx context.Context,
	cardID uuid.UUID,
	grade domain.Grade,
	today civil.Date,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review answer",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", int(grade)))

	// Reject bad grades before touching the repository
	if !grade.Valid() {
		log.Warn("invalid review grade",
			slog.String("card_id", cardID.String()),
			slog.Int("grade", int(grade)))
		return nil, &srs.InvalidGradeError{Grade: grade}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.getCard(ctx, log, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, NewSubmitAnswerError("failed to get card", err)
	}

	// An immediate answer supersedes anything queued for the daily pass
	if err := card.SetGrade(grade); err != nil {
		return nil, err
	}
	if _, err := s.srsService.Apply(card, today); err != nil {
		return nil, NewSubmitAnswerError("failed to schedule card", err)
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		log.Error("failed to store reviewed card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitAnswerError("failed to store card", err)
	}

	s.emit(ctx, log, events.NewCardScheduledEvent(card, grade, events.SourceReview))

	log.Info("review answer applied",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", int(grade)),
		slog.Int("interval", card.Interval),
		slog.String("next_review", card.NextReview.String()))

	return &ReviewResult{
		ID:         card.ID,
		NextReview: card.NextReview,
		Interval:   card.Interval,
	}, nil
}

// QueueAnswer implements CardReviewService.QueueAnswer.
func (s *cardReviewServiceImpl) QueueAnswer(ctx context.Context, cardID uuid.UUID, grade domain.Grade) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !grade.Valid() {
		log.Warn("invalid review grade",
			slog.String("card_id", cardID.String()),
			slog.Int("grade", int(grade)))
		return &srs.InvalidGradeError{Grade: grade}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card, err := s.getCard(ctx, log, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			return ErrCardNotFound
		}
		return NewQueueAnswerError("failed to get card", err)
	}

	if err := card.SetGrade(grade); err != nil {
		return err
	}
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return NewQueueAnswerError("failed to store card", err)
	}

	log.Debug("review answer queued",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", int(grade)))
	return nil
}

// DueCards implements CardReviewService.DueCards.
func (s *cardReviewServiceImpl) DueCards(ctx context.Context, today civil.Date) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardRepo.List(ctx)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, NewDueCardsError("failed to list cards", err)
	}

	due := s.srsService.DueCards(cards, today)
	log.Debug("computed due cards",
		slog.String("today", today.String()),
		slog.Int("total", len(cards)),
		slog.Int("due", len(due)))
	return due, nil
}

// GetNextCard implements CardReviewService.GetNextCard.
func (s *cardReviewServiceImpl) GetNextCard(ctx context.Context, today civil.Date) (*domain.Card, error) {
	due, err := s.DueCards(ctx, today)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, ErrNoCardsDue
	}
	return due[0], nil
}

func (s *cardReviewServiceImpl) getCard(ctx context.Context, log *slog.Logger, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			log.Warn("card not found for review", slog.String("card_id", cardID.String()))
			return nil, err
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// emit publishes an event. Handler failures are logged; the review itself has
// already been stored and is not rolled back.
func (s *cardReviewServiceImpl) emit(ctx context.Context, log *slog.Logger, event *events.CardScheduledEvent) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit card scheduled event",
			slog.String("error", err.Error()),
			slog.String("card_id", event.CardID.String()))
	}
}
