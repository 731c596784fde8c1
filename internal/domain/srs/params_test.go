package srs

import (
	"testing"

	"github.com/phrazzld/scry-scheduler/internal/domain"
)

func TestNewDefaultParams(t *testing.T) {
	params := NewDefaultParams()

	if params.MinEaseFactor != 1.3 {
		t.Errorf("MinEaseFactor should be 1.3, got %f", params.MinEaseFactor)
	}

	if params.FirstInterval != 1 || params.SecondInterval != 6 {
		t.Errorf("Expected intervals 1 and 6, got %d and %d",
			params.FirstInterval, params.SecondInterval)
	}

	if params.PassingGrade != domain.GradeCorrectHard {
		t.Errorf("PassingGrade should be %d, got %d", domain.GradeCorrectHard, params.PassingGrade)
	}
}

func TestNewParams(t *testing.T) {
	customParams := NewParams(ParamsConfig{
		MinEaseFactor:  1.5,
		FirstInterval:  2,
		SecondInterval: 5,
	})

	if customParams.MinEaseFactor != 1.5 {
		t.Errorf(
			"MinEaseFactor not set correctly, got %f, expected 1.5",
			customParams.MinEaseFactor,
		)
	}

	if customParams.FirstInterval != 2 {
		t.Errorf("FirstInterval not set correctly, got %d, expected 2", customParams.FirstInterval)
	}

	if customParams.SecondInterval != 5 {
		t.Errorf("SecondInterval not set correctly, got %d, expected 5", customParams.SecondInterval)
	}

	// Zero values keep the defaults
	partial := NewParams(ParamsConfig{SecondInterval: 4})
	if partial.MinEaseFactor != 1.3 || partial.FirstInterval != 1 {
		t.Errorf("Expected defaults to survive a partial config, got %+v", partial)
	}
}

func TestEaseFloorCannotBeLowered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params *Params
	}{
		{name: "NewParams ignores a lower floor", params: NewParams(ParamsConfig{MinEaseFactor: 1.1})},
		{name: "NewParams ignores a tiny floor", params: NewParams(ParamsConfig{MinEaseFactor: 0.5})},
		{name: "hand-built params", params: &Params{
			MinEaseFactor:  1.1,
			FirstInterval:  1,
			SecondInterval: 6,
			PassingGrade:   domain.PassingGrade,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewServiceWithParams(tt.params)
			got, err := svc.Transition(3, 10, 1.3, domain.GradeCorrectHard)
			if err != nil {
				t.Fatalf("Transition returned error: %v", err)
			}
			if got.EaseFactor < MinEaseFloor {
				t.Errorf("EaseFactor fell below %v: got %v", MinEaseFloor, got.EaseFactor)
			}
		})
	}

	if p := NewParams(ParamsConfig{MinEaseFactor: 1.1}); p.MinEaseFactor != MinEaseFloor {
		t.Errorf("MinEaseFactor should stay at %v, got %v", MinEaseFloor, p.MinEaseFactor)
	}
}
