package srs

import (
	"testing"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		reps     int
		current  int
		ef       float64
		expected int
	}{
		{name: "first success", reps: 0, current: 0, ef: 2.5, expected: 1},
		{name: "first success ignores stored interval", reps: 0, current: 40, ef: 2.5, expected: 1},
		{name: "second success", reps: 1, current: 1, ef: 2.6, expected: 6},
		{name: "third success multiplies by ease", reps: 2, current: 6, ef: 2.5, expected: 15},
		{name: "rounds down below the half", reps: 2, current: 6, ef: 2.7, expected: 16}, // 16.2
		{name: "rounds half up", reps: 3, current: 5, ef: 2.5, expected: 13},             // 12.5
		{name: "rounds up above the half", reps: 4, current: 16, ef: 2.8, expected: 45},  // 44.8
		{name: "floor ease factor", reps: 5, current: 10, ef: 1.3, expected: 13},
		{name: "zero stored interval never schedules today", reps: 2, current: 0, ef: 2.5, expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.reps, tc.current, tc.ef, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		grade    domain.Grade
		expected float64
	}{
		{name: "perfect recall raises ease", current: 2.5, grade: domain.GradePerfect, expected: 2.6},
		{name: "hesitant recall keeps ease", current: 2.5, grade: domain.GradeCorrectHesitant, expected: 2.5},
		{name: "hard recall lowers ease", current: 2.5, grade: domain.GradeCorrectHard, expected: 2.36},
		{name: "minimum ease factor is enforced", current: 1.4, grade: domain.GradeCorrectHard, expected: 1.3},
		{name: "ease below the floor is lifted", current: 1.0, grade: domain.GradeCorrectHesitant, expected: 1.3},
		{name: "no upper bound", current: 3.0, grade: domain.GradePerfect, expected: 3.1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.grade, params)

			// Use a small epsilon for float comparison
			epsilon := 0.001
			if newEF < tc.expected-epsilon || newEF > tc.expected+epsilon {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, newEF)
			}
		})
	}
}

func TestCalculateTransition(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	t.Run("failure resets repetitions and interval", func(t *testing.T) {
		for _, grade := range []domain.Grade{0, 1, 2} {
			got := calculateTransition(7, 120, 1.9, grade, params)
			want := Result{Repetitions: 0, Interval: 1, EaseFactor: 1.9}
			if got != want {
				t.Errorf("grade %d: expected %+v, got %+v", grade, want, got)
			}
		}
	})

	t.Run("success uses the pre-update ease factor for the interval", func(t *testing.T) {
		got := calculateTransition(2, 6, 2.5, domain.GradeCorrectHard, params)
		if got.Interval != 15 {
			t.Errorf("Expected interval 15 from ease 2.5, got %d", got.Interval)
		}
		if got.Repetitions != 3 {
			t.Errorf("Expected repetitions 3, got %d", got.Repetitions)
		}
	})

	t.Run("custom params", func(t *testing.T) {
		custom := NewParams(ParamsConfig{FirstInterval: 2, SecondInterval: 4})
		if got := calculateTransition(0, 0, 2.5, domain.GradePerfect, custom); got.Interval != 2 {
			t.Errorf("Expected first interval 2, got %d", got.Interval)
		}
		if got := calculateTransition(1, 2, 2.5, domain.GradePerfect, custom); got.Interval != 4 {
			t.Errorf("Expected second interval 4, got %d", got.Interval)
		}
	})
}
