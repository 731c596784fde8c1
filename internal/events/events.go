package events

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
)

// Source values identify which caller applied a grade.
const (
	SourceReview   = "review"
	SourceDailyJob = "daily_job"
)

// CardScheduledEvent records the state a card was left in after a grade was applied.
type CardScheduledEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	CardID      uuid.UUID    `json:"card_id"`
	Grade       domain.Grade `json:"grade"`
	Repetitions int          `json:"repetitions"`
	Interval    int          `json:"interval"`
	EaseFactor  float64      `json:"ease_factor"`
	NextReview  civil.Date   `json:"next_review"`
	Phase       srs.Phase    `json:"phase"`

	// Source is SourceReview or SourceDailyJob
	Source string `json:"source"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewCardScheduledEvent builds an event from a card that has just had grade applied.
func NewCardScheduledEvent(card *domain.Card, grade domain.Grade, source string) *CardScheduledEvent {
	return &CardScheduledEvent{
		ID:          uuid.New(),
		CardID:      card.ID,
		Grade:       grade,
		Repetitions: card.Repetitions,
		Interval:    card.Interval,
		EaseFactor:  card.EaseFactor,
		NextReview:  card.NextReview,
		Phase:       srs.PhaseOf(card.ReviewState),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *CardScheduledEvent) error
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(ctx context.Context, event *CardScheduledEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *CardScheduledEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *CardScheduledEvent) error
}
