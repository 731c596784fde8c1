package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
)

// RunnerConfig holds configuration for the daily runner
type RunnerConfig struct {
	// Hour and Minute give the wall-clock time the pass fires at
	Hour   int
	Minute int

	// Location is the zone Hour and Minute are read in, and the zone that
	// decides which calendar day a pass schedules for. Nil means UTC.
	Location *time.Location
}

// DefaultRunnerConfig fires at midnight UTC.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{Hour: 0, Minute: 0, Location: time.UTC}
}

// JobFactory builds the task to run for the given day.
type JobFactory func(today civil.Date) (Task, error)

// Runner enqueues one task per day at the configured time until its context is done.
type Runner struct {
	queue   TaskQueueWriter
	factory JobFactory
	config  RunnerConfig
	logger  *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRunner creates a new Runner
func NewRunner(queue TaskQueueWriter, factory JobFactory, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		queue:   queue,
		factory: factory,
		config:  config,
		logger:  logger.With("component", "daily_runner"),
		now:     time.Now,
		after:   time.After,
	}
}

// NextRun returns the first firing time strictly after now.
func (r *Runner) NextRun(now time.Time) time.Time {
	local := now.In(r.config.Location)
	next := time.Date(local.Year(), local.Month(), local.Day(),
		r.config.Hour, r.config.Minute, 0, 0, r.config.Location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1,
			r.config.Hour, r.config.Minute, 0, 0, r.config.Location)
	}
	return next
}

// Trigger builds and enqueues the task for the day of at.
func (r *Runner) Trigger(at time.Time) error {
	today := civil.DateOf(at.In(r.config.Location))

	task, err := r.factory(today)
	if err != nil {
		return fmt.Errorf("failed to create task for %s: %w", today, err)
	}
	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to enqueue task for %s: %w", today, err)
	}

	r.logger.Info("daily task enqueued", "task_id", task.ID(), "date", today.String())
	return nil
}

// Run blocks, triggering once per day, until ctx is done. A failed trigger is
// logged and the runner waits for the next day.
func (r *Runner) Run(ctx context.Context) error {
	var last time.Time
	for {
		// Never fire twice for the same slot, even if the clock lags the timer
		from := r.now()
		if from.Before(last) {
			from = last
		}
		next := r.NextRun(from)
		wait := next.Sub(r.now())
		r.logger.Info("next daily run scheduled", "at", next.Format(time.RFC3339), "in", wait.String())

		select {
		case <-ctx.Done():
			r.logger.Info("daily runner stopped")
			return nil
		case <-r.after(wait):
			last = next
			if err := r.Trigger(next); err != nil {
				r.logger.Error("daily trigger failed", "error", err)
			}
		}
	}
}
