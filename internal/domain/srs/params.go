package srs

import "github.com/phrazzld/scry-scheduler/internal/domain"

// Params defines all configurable parameters for the SM-2 algorithm
type Params struct {
	// MinEaseFactor is the floor applied after every ease update
	MinEaseFactor float64

	// Intervals used for the first two successful reviews, in days
	FirstInterval  int
	SecondInterval int

	// PassingGrade is the lowest grade that counts as a successful recall
	PassingGrade domain.Grade
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the defaults. MinEaseFactor can only raise the floor.
type ParamsConfig struct {
	MinEaseFactor  float64
	FirstInterval  int
	SecondInterval int
}

// MinEaseFloor is the lowest ease factor any card may reach after a review.
const MinEaseFloor = 1.3

// NewDefaultParams creates a new Params instance with the classic SM-2 values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  MinEaseFloor,
		FirstInterval:  1,
		SecondInterval: 6,
		PassingGrade:   domain.PassingGrade,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > MinEaseFloor {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}

	return params
}
