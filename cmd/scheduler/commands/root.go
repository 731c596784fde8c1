// Package commands implements the scheduler CLI's cobra commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/civil"
	"github.com/joho/godotenv"
	"github.com/phrazzld/scry-scheduler/internal/config"
	"github.com/phrazzld/scry-scheduler/internal/deck"
	"github.com/phrazzld/scry-scheduler/internal/domain"
	"github.com/phrazzld/scry-scheduler/internal/domain/srs"
	"github.com/phrazzld/scry-scheduler/internal/events"
	"github.com/phrazzld/scry-scheduler/internal/platform/logger"
	"github.com/phrazzld/scry-scheduler/internal/service/card_review"
	"github.com/phrazzld/scry-scheduler/internal/task"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	configPath string
	deckPath   string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	loc    *time.Location
	srs    srs.Service
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Schedule flashcard reviews with SM-2",
		Long: `scheduler applies pending review grades to a deck of flashcards using
the SM-2 spaced-repetition algorithm.

Grades run from 0 (blackout) to 5 (perfect). A review can be applied at once
or queued for the daily pass, which runs at scheduler.run_at in
scheduler.timezone (00:00 UTC by default).

Configuration comes from config.yaml, a .env file and SCRY_* environment
variables, e.g. SCRY_SCHEDULER_DECK_PATH or SCRY_LOG_LEVEL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ./config.yaml)")
	cmd.PersistentFlags().StringVar(&a.deckPath, "deck", "", "Deck file (overrides scheduler.deck_path)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newDailyCmd(a))
	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newDueCmd(a))
	cmd.AddCommand(newReviewCmd(a))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// init loads configuration and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	// A missing .env file is normal
	_ = godotenv.Load()

	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.deckPath != "" {
		cfg.Scheduler.DeckPath = a.deckPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log, err := logger.Setup(logger.LoggerConfig{Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log
	a.loc = loc
	a.srs = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor:  cfg.SRS.MinEaseFactor,
		FirstInterval:  cfg.SRS.FirstInterval,
		SecondInterval: cfg.SRS.SecondInterval,
	}))

	log.Debug("configuration loaded",
		"deck_path", cfg.Scheduler.DeckPath,
		"timezone", cfg.Scheduler.Timezone,
		"run_at", cfg.Scheduler.RunAt,
		"worker_count", cfg.Scheduler.WorkerCount)

	cmd.SetContext(logger.WithLogger(cmd.Context(), log))
	return nil
}

// today returns the --date value if set, otherwise the current date in the
// configured timezone.
func (a *app) today(dateFlag string) (civil.Date, error) {
	if dateFlag == "" {
		return domain.Today(a.loc), nil
	}
	d, err := civil.ParseDate(dateFlag)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", dateFlag)
	}
	return d, nil
}

// openDeck opens the configured deck file. With create set, a missing file
// is created empty first.
func (a *app) openDeck(create bool) (*deck.FileStore, error) {
	path := a.cfg.Scheduler.DeckPath
	store, err := deck.OpenFile(path)
	if err == nil || !create || !errors.Is(err, fs.ErrNotExist) {
		return store, err
	}

	a.logger.Info("creating deck file", "path", path)
	if err := deck.WriteFile(path, nil); err != nil {
		return nil, err
	}
	return deck.OpenFile(path)
}

// emitter returns an emitter that logs every scheduled card.
func (a *app) emitter() *events.InMemoryEventEmitter {
	emitter := events.NewInMemoryEventEmitter(a.logger)
	emitter.RegisterHandler(events.NewLogHandler(a.logger))
	return emitter
}

func (a *app) batchScheduler() *task.BatchScheduler {
	return task.NewBatchScheduler(a.srs, a.cfg.Scheduler.WorkerCount, a.logger)
}

func (a *app) reviewService(store card_review.CardRepository) (card_review.CardReviewService, error) {
	return card_review.NewCardReviewService(store, a.srs, a.emitter(), a.logger)
}
