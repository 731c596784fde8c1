package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidGrade is returned when a recall-quality grade is outside 0..5.
	// An out-of-range grade is a caller bug and is never clamped.
	ErrInvalidGrade = errors.New("invalid grade")

	// ErrCardNotFound is returned when a card does not exist.
	ErrCardNotFound = errors.New("card not found")
)
