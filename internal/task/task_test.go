package task

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/stretchr/testify/require"
)

var testToday = civil.Date{Year: 2024, Month: 1, Day: 1}

// mockTask implements the Task interface for testing
type mockTask struct {
	id     uuid.UUID
	status TaskStatus
	execFn func(ctx context.Context) error
}

func (m *mockTask) ID() uuid.UUID {
	return m.id
}

func (m *mockTask) Type() string {
	return "mock"
}

func (m *mockTask) Status() TaskStatus {
	return m.status
}

func (m *mockTask) Execute(ctx context.Context) error {
	if m.execFn != nil {
		return m.execFn(ctx)
	}
	return nil
}

func newMockTask(execFn func(ctx context.Context) error) *mockTask {
	return &mockTask{
		id:     uuid.New(),
		status: TaskStatusPending,
		execFn: execFn,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gradePtr(g domain.Grade) *domain.Grade {
	return &g
}

func newCard(t *testing.T, state domain.ReviewState) *domain.Card {
	t.Helper()
	card, err := domain.NewCard("question", "answer", "post", testToday)
	require.NoError(t, err)
	card.ReviewState = state
	return card
}
