package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/events"
)

// Common errors
var (
	ErrNilCardStore = errors.New("card store cannot be nil")
	ErrNilScheduler = errors.New("batch scheduler cannot be nil")
)

// CardStore is the storage a DailyJob reads from and writes back to.
type CardStore interface {
	// List returns every card. The job mutates the returned values.
	List(ctx context.Context) ([]*domain.Card, error)

	// UpdateAll stores the given cards, all or none.
	UpdateAll(ctx context.Context, cards []*domain.Card) error
}

// Summary describes one completed daily pass.
type Summary struct {
	Date      civil.Date `json:"date"`
	Total     int        `json:"total"`
	Scheduled int        `json:"scheduled"`
	Skipped   int        `json:"skipped"`
	Failed    int        `json:"failed"`
	Due       int        `json:"due"`
}

// DailyJob is the once-a-day pass: it loads every card, applies pending
// grades, saves the changed cards, emits an event per card and logs a summary.
type DailyJob struct {
	id        uuid.UUID
	today     civil.Date
	store     CardStore
	scheduler *BatchScheduler
	emitter   events.EventEmitter
	logger    *slog.Logger

	mu     sync.Mutex
	status TaskStatus
}

// Verify interface compliance at compile time
var _ Task = (*DailyJob)(nil)

// NewDailyJob creates a job for today. emitter may be nil.
func NewDailyJob(
	today civil.Date,
	store CardStore,
	scheduler *BatchScheduler,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*DailyJob, error) {
	if store == nil {
		return nil, ErrNilCardStore
	}
	if scheduler == nil {
		return nil, ErrNilScheduler
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	return &DailyJob{
		id:        id,
		today:     today,
		store:     store,
		scheduler: scheduler,
		emitter:   emitter,
		logger:    logger.With("task_type", TaskTypeDailySchedule, "task_id", id, "date", today.String()),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (j *DailyJob) ID() uuid.UUID {
	return j.id
}

// Type returns the task type identifier
func (j *DailyJob) Type() string {
	return TaskTypeDailySchedule
}

// Status returns the current task status
func (j *DailyJob) Status() TaskStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

func (j *DailyJob) setStatus(status TaskStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = status
}

// Execute runs the job, discarding the summary.
func (j *DailyJob) Execute(ctx context.Context) error {
	_, err := j.Run(ctx)
	return err
}

// Run executes the pass and returns its summary.
//
// Cards whose pending grade is rejected keep that grade and are not saved;
// the returned error then joins their errors, but every other card is still
// scheduled and stored.
func (j *DailyJob) Run(ctx context.Context) (*Summary, error) {
	j.setStatus(TaskStatusProcessing)
	j.logger.Info("starting daily scheduling pass")

	if err := ctx.Err(); err != nil {
		j.setStatus(TaskStatusFailed)
		j.logger.Error("task cancelled by context", "error", err)
		return nil, fmt.Errorf("task cancelled by context: %w", err)
	}

	cards, err := j.store.List(ctx)
	if err != nil {
		j.setStatus(TaskStatusFailed)
		j.logger.Error("failed to load cards", "error", err)
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	result, scheduleErr := j.scheduler.Schedule(ctx, cards, j.today)
	if result == nil {
		j.setStatus(TaskStatusFailed)
		j.logger.Error("scheduling pass aborted", "error", scheduleErr)
		return nil, fmt.Errorf("scheduling pass aborted: %w", scheduleErr)
	}

	changed := make([]*domain.Card, 0, len(result.Scheduled))
	for _, s := range result.Scheduled {
		changed = append(changed, s.Card)
	}
	if len(changed) > 0 {
		if err := j.store.UpdateAll(ctx, changed); err != nil {
			j.setStatus(TaskStatusFailed)
			j.logger.Error("failed to save scheduled cards", "error", err)
			return nil, fmt.Errorf("failed to save scheduled cards: %w", err)
		}
	}

	j.emit(ctx, result.Scheduled)

	due := 0
	for _, card := range cards {
		if card != nil && card.IsDue(j.today) {
			due++
		}
	}

	summary := &Summary{
		Date:      j.today,
		Total:     len(cards),
		Scheduled: len(result.Scheduled),
		Skipped:   result.Skipped,
		Failed:    result.Failed,
		Due:       due,
	}

	j.logger.Info("daily scheduling pass finished",
		"total", summary.Total,
		"scheduled", summary.Scheduled,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"due", summary.Due)

	if scheduleErr != nil {
		j.setStatus(TaskStatusFailed)
		return summary, fmt.Errorf("%d card(s) could not be scheduled: %w", summary.Failed, scheduleErr)
	}

	j.setStatus(TaskStatusCompleted)
	return summary, nil
}

func (j *DailyJob) emit(ctx context.Context, scheduled []Scheduled) {
	if j.emitter == nil {
		return
	}
	for _, s := range scheduled {
		event := events.NewCardScheduledEvent(s.Card, s.Grade, events.SourceDailyJob)
		if err := j.emitter.EmitEvent(ctx, event); err != nil {
			j.logger.Warn("failed to emit card scheduled event",
				"error", err,
				"card_id", s.Card.ID)
		}
	}
}
