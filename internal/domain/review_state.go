package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Grade is a recall-quality grade on the SM-2 scale.
type Grade int

// Possible grade values
const (
	GradeBlackout        Grade = 0 // complete failure to recall
	GradeIncorrect       Grade = 1 // wrong, but the answer felt familiar
	GradeIncorrectEasy   Grade = 2 // wrong, but the answer seemed easy once shown
	GradeCorrectHard     Grade = 3 // correct with serious difficulty
	GradeCorrectHesitant Grade = 4 // correct after hesitation
	GradePerfect         Grade = 5 // perfect recall
)

// Grade bounds and defaults for new cards.
const (
	MinGrade          = GradeBlackout
	MaxGrade          = GradePerfect
	PassingGrade      = GradeCorrectHard
	DefaultEaseFactor = 2.5
)

// Valid reports whether g lies on the 0..5 scale.
func (g Grade) Valid() bool {
	return g >= MinGrade && g <= MaxGrade
}

// Passing reports whether g counts as a successful recall.
func (g Grade) Passing() bool {
	return g >= PassingGrade
}

// ReviewState holds the spaced-repetition scheduling fields of a card.
type ReviewState struct {
	Repetitions int        `json:"repetitions"` // consecutive successful reviews since the last reset
	Interval    int        `json:"interval"`    // days until the next review
	EaseFactor  float64    `json:"ease_factor"` // interval growth multiplier, floor 1.3
	NextReview  civil.Date `json:"next_review"` // day on which the card becomes due
	Grade       *Grade     `json:"grade,omitempty"`
}

// NewReviewState returns the state of a card that has never been reviewed.
// The card is due on the day it is created.
func NewReviewState(today civil.Date) ReviewState {
	return ReviewState{
		Repetitions: 0,
		Interval:    0,
		EaseFactor:  DefaultEaseFactor,
		NextReview:  today,
	}
}

// HasPendingGrade reports whether a grade is waiting to be applied.
func (s *ReviewState) HasPendingGrade() bool {
	return s.Grade != nil
}

// SetGrade records g as the pending grade for the next scheduling pass.
// The state is left untouched if g is out of range.
func (s *ReviewState) SetGrade(g Grade) error {
	if !g.Valid() {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidGrade, g, MinGrade, MaxGrade)
	}
	s.Grade = &g
	return nil
}

// ClearGrade drops the pending grade.
func (s *ReviewState) ClearGrade() {
	s.Grade = nil
}

// IsDue reports whether the card should be reviewed on today.
func (s *ReviewState) IsDue(today civil.Date) bool {
	return !s.NextReview.After(today)
}

// Today returns the current calendar date in loc, or in UTC when loc is nil.
func Today(loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(time.Now().In(loc))
}
