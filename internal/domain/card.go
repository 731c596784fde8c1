package domain

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrEmptyQuestion is returned when a card has no question text.
	ErrEmptyQuestion = errors.New("card question cannot be empty")

	// ErrEmptyAnswer is returned when a card has no answer text.
	ErrEmptyAnswer = errors.New("card answer cannot be empty")
)

// Card represents a study flashcard generated from a summarised post.
// Its scheduling fields are embedded so they serialise flat alongside the content.
type Card struct {
	ID           uuid.UUID `json:"id"`
	SourcePostID string    `json:"source_post_id,omitempty"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	ReviewState
	CreatedAt time.Time `json:"created_at"`
}

// NewCard creates a new Card with a fresh ID and the default review state,
// due on today. Returns an error if validation fails.
func NewCard(question, answer, sourcePostID string, today civil.Date) (*Card, error) {
	card := &Card{
		ID:           uuid.New(),
		SourcePostID: sourcePostID,
		Question:     question,
		Answer:       answer,
		ReviewState:  NewReviewState(today),
		CreatedAt:    time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrEmptyQuestion
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrEmptyAnswer
	}

	if c.Grade != nil && !c.Grade.Valid() {
		return ErrInvalidGrade
	}

	return nil
}

// Clone returns a deep copy of the card, including its pending grade.
func (c *Card) Clone() *Card {
	clone := *c
	if c.Grade != nil {
		g := *c.Grade
		clone.Grade = &g
	}
	return &clone
}
