package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/deck"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDailyJobFactoryReadsCurrentDeck checks that a pass picks up cards added
// and grades queued after the runner started, and keeps them on disk.
func TestDailyJobFactoryReadsCurrentDeck(t *testing.T) {
	ctx := context.Background()
	path, cards := writeFixtureDeck(t)
	log, _ := logger.GetTestLogger(t)

	a := &app{
		cfg: &config.Config{Scheduler: config.SchedulerConfig{
			WorkerCount: 2,
			DeckPath:    path,
		}},
		logger: log,
		loc:    time.UTC,
		srs:    srs.NewDefaultService(),
	}
	factory := a.dailyJobFactory()

	// Another process edits the deck while the runner is waiting
	out, err := execute(t, ctx, "add", "--deck", path, "--date", "2024-01-01",
		"-q", "Capital of Italy?", "-a", "Rome")
	require.NoError(t, err)
	added, err := uuid.Parse(strings.TrimSpace(out))
	require.NoError(t, err)

	_, err = execute(t, ctx, "review", "--deck", path, "--queue", cards[2].ID.String(), "4")
	require.NoError(t, err)

	job, err := factory(fixtureDay)
	require.NoError(t, err)
	require.NoError(t, job.Execute(ctx))

	store, err := deck.ReadFile(path)
	require.NoError(t, err)
	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4, "the added card survives the pass")

	queued, err := store.GetByID(ctx, cards[2].ID)
	require.NoError(t, err)
	assert.False(t, queued.HasPendingGrade(), "the queued grade was applied")
	assert.Equal(t, 1, queued.Repetitions)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 2}, queued.NextReview)

	first, err := store.GetByID(ctx, cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 15, first.Interval)

	_, err = store.GetByID(ctx, added)
	assert.NoError(t, err)
}
