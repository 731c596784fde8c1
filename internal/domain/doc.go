// Package domain contains the core business entities, value objects, and
// domain logic of the application: flashcards and the review state the
// spaced-repetition engine schedules. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
