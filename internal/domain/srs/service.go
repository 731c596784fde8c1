package srs

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// ErrNilCard is returned when a nil card is handed to the engine.
var ErrNilCard = errors.New("card cannot be nil")

// InvalidGradeError reports a grade outside the 0..5 scale.
// It matches domain.ErrInvalidGrade under errors.Is.
type InvalidGradeError struct {
	Grade domain.Grade
}

// Error implements the error interface.
func (e *InvalidGradeError) Error() string {
	return fmt.Sprintf("invalid grade %d: must be between %d and %d",
		e.Grade, domain.MinGrade, domain.MaxGrade)
}

// Unwrap returns domain.ErrInvalidGrade to support errors.Is.
func (e *InvalidGradeError) Unwrap() error {
	return domain.ErrInvalidGrade
}

// Service defines the interface for SM-2 scheduling operations.
// Implementations are pure: they hold no mutable state and perform no I/O,
// so one Service may be shared by any number of goroutines.
type Service interface {
	// Transition computes the scheduling fields that follow a review with the given grade.
	Transition(repetitions, interval int, easeFactor float64, grade domain.Grade) (Result, error)

	// Apply applies the card's pending grade, if any, and reports whether it did.
	Apply(card *domain.Card, today civil.Date) (bool, error)

	// ScheduleAll applies pending grades on every card in the slice.
	ScheduleAll(cards []*domain.Card, today civil.Date) error

	// DueCards returns the cards due on or before today, in input order.
	DueCards(cards []*domain.Card, today civil.Date) []*domain.Card
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// Verify interface compliance at compile time
var _ Service = (*defaultService)(nil)

var defaultEngine = NewDefaultService()

// NewDefaultService creates a new SRS service with the classic SM-2 parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
// A nil params falls back to the defaults.
func NewServiceWithParams(params *Params) Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &defaultService{
		params: params,
	}
}

// Transition validates the grade before computing anything, so a rejected
// call leaves the caller's values valid to retry.
//
// Intervals beyond the second review are rounded half away from zero:
// from (repetitions=2, interval=6, easeFactor=2.7) a grade of 5 yields interval 16.
func (s *defaultService) Transition(
	repetitions int,
	interval int,
	easeFactor float64,
	grade domain.Grade,
) (Result, error) {
	if !grade.Valid() {
		return Result{}, &InvalidGradeError{Grade: grade}
	}

	return calculateTransition(repetitions, interval, easeFactor, grade, s.params), nil
}

// Apply writes the transition for the card's pending grade back into the card,
// sets NextReview to today plus the new interval, and clears the grade.
// A card without a pending grade is left untouched. On an invalid grade the
// card, including its pending grade, is left untouched.
func (s *defaultService) Apply(card *domain.Card, today civil.Date) (bool, error) {
	if card == nil {
		return false, ErrNilCard
	}

	if !card.HasPendingGrade() {
		return false, nil
	}

	result, err := s.Transition(card.Repetitions, card.Interval, card.EaseFactor, *card.Grade)
	if err != nil {
		return false, fmt.Errorf("card %s: %w", card.ID, err)
	}

	card.Repetitions = result.Repetitions
	card.Interval = result.Interval
	card.EaseFactor = result.EaseFactor
	card.NextReview = today.AddDays(result.Interval)
	card.ClearGrade()

	return true, nil
}

// ScheduleAll applies each card independently. A bad pending grade on one card
// does not stop the others; every failure is joined into the returned error.
func (s *defaultService) ScheduleAll(cards []*domain.Card, today civil.Date) error {
	var errs []error
	for _, card := range cards {
		if _, err := s.Apply(card, today); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DueCards implements the Service interface.
func (s *defaultService) DueCards(cards []*domain.Card, today civil.Date) []*domain.Card {
	return DueCards(cards, today)
}

// Transition runs the default SM-2 transition. See Service.Transition.
func Transition(repetitions, interval int, easeFactor float64, grade domain.Grade) (Result, error) {
	return defaultEngine.Transition(repetitions, interval, easeFactor, grade)
}

// Apply applies a card's pending grade with the default parameters. See Service.Apply.
func Apply(card *domain.Card, today civil.Date) (bool, error) {
	return defaultEngine.Apply(card, today)
}

// ScheduleAll applies pending grades with the default parameters. See Service.ScheduleAll.
func ScheduleAll(cards []*domain.Card, today civil.Date) error {
	return defaultEngine.ScheduleAll(cards, today)
}

// DueCards returns every card whose NextReview is on or before today,
// preserving input order. Nil entries are skipped. It never mutates a card.
func DueCards(cards []*domain.Card, today civil.Date) []*domain.Card {
	due := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if card != nil && card.IsDue(today) {
			due = append(due, card)
		}
	}
	return due
}
