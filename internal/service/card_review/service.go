package card_review

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// ReviewResult is what a review submission reports back to its caller.
type ReviewResult struct {
	ID         uuid.UUID  `json:"id"`
	NextReview civil.Date `json:"next_review"`
	Interval   int        `json:"interval"`
}

// CardRepository defines the storage the review service needs.
type CardRepository interface {
	// GetByID retrieves a card by its unique ID.
	// Returns an error matching domain.ErrCardNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// List returns every card in a stable order.
	List(ctx context.Context) ([]*domain.Card, error)

	// Update stores a modified card.
	Update(ctx context.Context, card *domain.Card) error
}

// CardReviewService provides methods for reviewing flashcards
// using a spaced repetition algorithm.
type CardReviewService interface {
	// SubmitAnswer applies grade to the card immediately and stores the result.
	//
	// Returns:
	//   - (*ReviewResult, nil): The card's ID, next review date and interval
	//   - (nil, error matching domain.ErrInvalidGrade): grade outside 0..5; nothing is read or written
	//   - (nil, ErrCardNotFound): If the card does not exist
	//   - (nil, *ServiceError): Any other repository failure
	SubmitAnswer(ctx context.Context, cardID uuid.UUID, grade domain.Grade, today civil.Date) (*ReviewResult, error)

	// QueueAnswer records grade as the card's pending grade, to be applied by
	// the next daily scheduling pass. A later call replaces an earlier one.
	QueueAnswer(ctx context.Context, cardID uuid.UUID, grade domain.Grade) error

	// DueCards lists the cards due on or before today, in repository order.
	DueCards(ctx context.Context, today civil.Date) ([]*domain.Card, error)

	// GetNextCard returns the first due card, or ErrNoCardsDue.
	GetNextCard(ctx context.Context, today civil.Date) (*domain.Card, error)
}

// Common error types for CardReviewService
var (
	// ErrNoCardsDue indicates that no card is due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = domain.ErrCardNotFound
)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_answer", "due_cards")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_answer",
		Message:   message,
		Err:       err,
	}
}

// NewQueueAnswerError returns a new ServiceError for the queue_answer operation.
func NewQueueAnswerError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "queue_answer",
		Message:   message,
		Err:       err,
	}
}

// NewDueCardsError returns a new ServiceError for the due_cards operation.
func NewDueCardsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "due_cards",
		Message:   message,
		Err:       err,
	}
}
