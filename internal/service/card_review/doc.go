// Package card_review implements the review-submission flow around the SM-2
// scheduler: it looks a card up, applies or queues a grade, stores the result
// and reports which cards are due. Storage is reached through CardRepository.
package card_review
