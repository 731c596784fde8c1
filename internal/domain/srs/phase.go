package srs

import "github.com/phrazzld/scry-scheduler/internal/domain"

// Phase names where a card sits in the SM-2 progression. Cards never leave
// the cycle: a failed review drops any card back to PhaseLearning.
type Phase string

// Possible phase values
const (
	PhaseNew       Phase = "new"
	PhaseLearning  Phase = "learning"
	PhaseReviewing Phase = "reviewing"
)

// PhaseOf classifies a review state. Interval 0 only occurs before the first
// applied grade, so Repetitions 0 with Interval 0 reads as new whatever the
// ease or NextReview; a hand-edited deck can fake it. One or two successes in
// a row, or a recent lapse, is learning; three or more is reviewing.
func PhaseOf(state domain.ReviewState) Phase {
	switch {
	case state.Repetitions == 0 && state.Interval == 0:
		return PhaseNew
	case state.Repetitions < 3:
		return PhaseLearning
	default:
		return PhaseReviewing
	}
}
