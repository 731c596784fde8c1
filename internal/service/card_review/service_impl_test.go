package card_review

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/deck"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = civil.Date{Year: 2024, Month: 1, Day: 1}

// recordingHandler captures every event it receives.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.CardScheduledEvent
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.CardScheduledEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

// failingRepo fails every call with err.
type failingRepo struct {
	err error
}

func (r failingRepo) GetByID(context.Context, uuid.UUID) (*domain.Card, error) { return nil, r.err }
func (r failingRepo) List(context.Context) ([]*domain.Card, error)            { return nil, r.err }
func (r failingRepo) Update(context.Context, *domain.Card) error              { return r.err }

func newCard(t *testing.T, reps, interval int, next civil.Date) *domain.Card {
	t.Helper()
	card, err := domain.NewCard("What is the capital of France?", "Paris", "post-1", next)
	require.NoError(t, err)
	card.Repetitions = reps
	card.Interval = interval
	return card
}

func setupService(t *testing.T, cards ...*domain.Card) (CardReviewService, *deck.Store, *recordingHandler) {
	t.Helper()
	store, err := deck.NewStore(cards...)
	require.NoError(t, err)

	log, _ := logger.GetTestLogger(t)
	emitter := events.NewInMemoryEventEmitter(log)
	handler := &recordingHandler{}
	emitter.RegisterHandler(handler)

	svc, err := NewCardReviewService(store, srs.NewDefaultService(), emitter, log)
	require.NoError(t, err)
	return svc, store, handler
}

func TestNewCardReviewService(t *testing.T) {
	t.Parallel()

	store, err := deck.NewStore()
	require.NoError(t, err)

	tests := []struct {
		name    string
		repo    CardRepository
		srs     srs.Service
		wantErr bool
	}{
		{name: "valid", repo: store, srs: srs.NewDefaultService()},
		{name: "nil repository", repo: nil, srs: srs.NewDefaultService(), wantErr: true},
		{name: "nil srs service", repo: store, srs: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewCardReviewService(tt.repo, tt.srs, nil, nil)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestSubmitAnswer(t *testing.T) {
	t.Parallel()

	t.Run("applies grade and stores result", func(t *testing.T) {
		t.Parallel()
		card := newCard(t, 2, 6, testToday)
		svc, store, handler := setupService(t, card)

		result, err := svc.SubmitAnswer(context.Background(), card.ID, domain.GradePerfect, testToday)
		require.NoError(t, err)
		assert.Equal(t, card.ID, result.ID)
		assert.Equal(t, 15, result.Interval)
		assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 16}, result.NextReview)

		stored, err := store.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.Repetitions)
		assert.InDelta(t, 2.6, stored.EaseFactor, 1e-9)
		assert.False(t, stored.HasPendingGrade())

		require.Len(t, handler.events, 1)
		event := handler.events[0]
		assert.Equal(t, card.ID, event.CardID)
		assert.Equal(t, events.SourceReview, event.Source)
		assert.Equal(t, srs.PhaseReviewing, event.Phase)
	})

	t.Run("failing grade schedules tomorrow", func(t *testing.T) {
		t.Parallel()
		card := newCard(t, 4, 30, testToday)
		svc, _, _ := setupService(t, card)

		result, err := svc.SubmitAnswer(context.Background(), card.ID, domain.GradeIncorrect, testToday)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Interval)
		assert.Equal(t, testToday.AddDays(1), result.NextReview)
	})

	t.Run("replaces a queued grade", func(t *testing.T) {
		t.Parallel()
		card := newCard(t, 0, 0, testToday)
		svc, store, _ := setupService(t, card)

		require.NoError(t, svc.QueueAnswer(context.Background(), card.ID, domain.GradeBlackout))
		_, err := svc.SubmitAnswer(context.Background(), card.ID, domain.GradePerfect, testToday)
		require.NoError(t, err)

		stored, err := store.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Repetitions)
		assert.False(t, stored.HasPendingGrade())
	})

	t.Run("invalid grade", func(t *testing.T) {
		t.Parallel()
		card := newCard(t, 2, 6, testToday)
		svc, store, handler := setupService(t, card)

		_, err := svc.SubmitAnswer(context.Background(), card.ID, domain.Grade(6), testToday)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidGrade)

		var gradeErr *srs.InvalidGradeError
		require.True(t, errors.As(err, &gradeErr))
		assert.Equal(t, domain.Grade(6), gradeErr.Grade)

		stored, err := store.GetByID(context.Background(), card.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.Repetitions)
		assert.Equal(t, testToday, stored.NextReview)
		assert.Empty(t, handler.events)
	})

	t.Run("card not found", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := setupService(t)

		_, err := svc.SubmitAnswer(context.Background(), uuid.New(), domain.GradePerfect, testToday)
		assert.ErrorIs(t, err, ErrCardNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("disk on fire")
		svc, err := NewCardReviewService(failingRepo{err: boom}, srs.NewDefaultService(), nil, nil)
		require.NoError(t, err)

		_, err = svc.SubmitAnswer(context.Background(), uuid.New(), domain.GradePerfect, testToday)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "submit_answer", svcErr.Operation)
	})
}

func TestQueueAnswer(t *testing.T) {
	t.Parallel()

	card := newCard(t, 1, 1, testToday)
	svc, store, handler := setupService(t, card)
	ctx := context.Background()

	require.NoError(t, svc.QueueAnswer(ctx, card.ID, domain.GradeCorrectHard))
	require.NoError(t, svc.QueueAnswer(ctx, card.ID, domain.GradeCorrectHesitant))

	stored, err := store.GetByID(ctx, card.ID)
	require.NoError(t, err)
	require.True(t, stored.HasPendingGrade())
	assert.Equal(t, domain.GradeCorrectHesitant, *stored.Grade)
	assert.Equal(t, 1, stored.Repetitions, "queued grades are not applied")
	assert.Empty(t, handler.events)

	assert.ErrorIs(t, svc.QueueAnswer(ctx, card.ID, domain.Grade(-1)), domain.ErrInvalidGrade)
	assert.ErrorIs(t, svc.QueueAnswer(ctx, uuid.New(), domain.GradePerfect), ErrCardNotFound)
}

func TestDueCardsAndGetNextCard(t *testing.T) {
	t.Parallel()

	overdue := newCard(t, 2, 6, testToday.AddDays(-2))
	future := newCard(t, 3, 16, testToday.AddDays(5))
	dueToday := newCard(t, 0, 0, testToday)
	svc, _, _ := setupService(t, overdue, future, dueToday)
	ctx := context.Background()

	due, err := svc.DueCards(ctx, testToday)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, overdue.ID, due[0].ID)
	assert.Equal(t, dueToday.ID, due[1].ID)

	next, err := svc.GetNextCard(ctx, testToday)
	require.NoError(t, err)
	assert.Equal(t, overdue.ID, next.ID)

	_, err = svc.GetNextCard(ctx, testToday.AddDays(-3))
	assert.ErrorIs(t, err, ErrNoCardsDue)
}

func TestDueCardsRepositoryFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("unavailable")
	svc, err := NewCardReviewService(failingRepo{err: boom}, srs.NewDefaultService(), nil, nil)
	require.NoError(t, err)

	_, err = svc.DueCards(context.Background(), testToday)
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "due_cards", svcErr.Operation)
	assert.ErrorIs(t, err, boom)
}
