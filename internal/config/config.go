package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	SRS       SRSConfig       `mapstructure:"srs" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// SchedulerConfig contains settings for the daily scheduling job.
type SchedulerConfig struct {
	// WorkerCount bounds how many cards are scheduled concurrently
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0,lte=64"`

	// RunAt is the wall-clock time (HH:MM) in Timezone at which the daily job fires
	RunAt string `mapstructure:"run_at" validate:"required,datetime=15:04"`

	// Timezone is the IANA zone used to decide what "today" is
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`

	// DeckPath is the JSON deck file the CLI loads and saves
	DeckPath string `mapstructure:"deck_path" validate:"required"`
}

// SRSConfig contains tunable SM-2 parameters.
type SRSConfig struct {
	// MinEaseFactor may raise the 1.3 ease floor, never lower it
	MinEaseFactor  float64 `mapstructure:"min_ease_factor" validate:"gte=1.3"`
	FirstInterval  int     `mapstructure:"first_interval" validate:"gte=1"`
	SecondInterval int     `mapstructure:"second_interval" validate:"gtefield=FirstInterval"`
}

// Location resolves Timezone.
func (c SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RunAtClock returns the hour and minute of RunAt.
func (c SchedulerConfig) RunAtClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.RunAt)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing run_at %q: %w", c.RunAt, err)
	}
	return t.Hour(), t.Minute(), nil
}
