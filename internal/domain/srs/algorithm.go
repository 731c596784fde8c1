package srs

import (
	"math"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

// Result holds the scheduling fields produced by one SM-2 transition.
type Result struct {
	Repetitions int
	Interval    int
	EaseFactor  float64
}

// calculateNewEaseFactor determines the new ease factor after a successful review.
//
// The ease factor represents how easy the card is - higher values mean intervals
// grow faster. The adjustment is the classic SM-2 quadratic in the distance from
// a perfect grade:
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// Parameters:
//   - currentEF: The ease factor before this review
//   - grade: The recall-quality grade, expected to be passing
//   - params: Configuration parameters for the SRS algorithm
//
// Returns:
//   - The new ease factor, never below params.MinEaseFactor or MinEaseFloor
//
// Algorithm behavior:
//   - grade 5 adds 0.10
//   - grade 4 leaves the ease factor unchanged
//   - grade 3 subtracts 0.14
func calculateNewEaseFactor(currentEF float64, grade domain.Grade, params *Params) float64 {
	miss := float64(domain.MaxGrade - grade)
	newEF := currentEF + (0.1 - miss*(0.08+miss*0.02))

	if floor := max(params.MinEaseFactor, MinEaseFloor); newEF < floor {
		newEF = floor
	}

	return newEF
}

// calculateNewInterval determines the interval in days after a successful review.
//
// Parameters:
//   - repetitions: Successful reviews in a row before this one
//   - interval: The interval before this review
//   - easeFactor: The ease factor before this review
//   - params: Configuration parameters for the SRS algorithm
//
// Algorithm behavior:
//   - First success (repetitions == 0): params.FirstInterval
//   - Second success (repetitions == 1): params.SecondInterval
//   - Otherwise: interval * easeFactor rounded half away from zero, so 16.5 becomes 17,
//     and never less than one day even when the stored interval was zero or negative
func calculateNewInterval(repetitions, interval int, easeFactor float64, params *Params) int {
	switch repetitions {
	case 0:
		return params.FirstInterval
	case 1:
		return params.SecondInterval
	default:
		next := int(math.Round(float64(interval) * easeFactor))
		if next < 1 {
			next = 1
		}
		return next
	}
}

// calculateTransition applies one grade to the given scheduling fields.
// The grade must already be validated.
//
// A failed recall resets the repetition count and schedules the card for the
// next day while leaving the ease factor untouched. A successful recall
// advances the repetition count, grows the interval from the pre-update ease
// factor, and then adjusts the ease factor.
func calculateTransition(
	repetitions int,
	interval int,
	easeFactor float64,
	grade domain.Grade,
	params *Params,
) Result {
	if grade < params.PassingGrade {
		return Result{
			Repetitions: 0,
			Interval:    1,
			EaseFactor:  easeFactor,
		}
	}

	return Result{
		Repetitions: repetitions + 1,
		Interval:    calculateNewInterval(repetitions, interval, easeFactor, params),
		EaseFactor:  calculateNewEaseFactor(easeFactor, grade, params),
	}
}
