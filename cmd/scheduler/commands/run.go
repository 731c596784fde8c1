package commands

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/phrazzld/scry-scheduler/internal/task"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var now bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daily pass on a schedule until interrupted",
		Long: `Start the daily runner. The pass fires every day at scheduler.run_at in
scheduler.timezone and rewrites the deck file. Stop with Ctrl-C.

Examples:
  scheduler run
  scheduler run --now`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := a.cfg.Scheduler.RunAtClock()
			if err != nil {
				return err
			}

			// Fail fast on a missing or corrupt deck
			if _, err := a.openDeck(false); err != nil {
				return err
			}

			queue := task.NewTaskQueue(1, a.logger)
			pool := task.NewWorkerPool(queue, task.DefaultWorkerPoolConfig(), a.logger)
			runner := task.NewRunner(queue, a.dailyJobFactory(), task.RunnerConfig{
				Hour:     hour,
				Minute:   minute,
				Location: a.loc,
			}, a.logger)

			pool.Start()
			defer pool.Stop()
			defer queue.Close()

			if now {
				if err := runner.Trigger(time.Now()); err != nil {
					return err
				}
			}

			a.logger.Info("daily runner started",
				"deck_path", a.cfg.Scheduler.DeckPath,
				"run_at", a.cfg.Scheduler.RunAt,
				"timezone", a.loc.String())

			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&now, "now", false, "Also run one pass immediately")

	return cmd
}

// dailyJobFactory builds each day's job over a fresh read of the deck file, so
// cards added and grades queued while the runner is up are part of the pass.
func (a *app) dailyJobFactory() task.JobFactory {
	batch := a.batchScheduler()
	emitter := a.emitter()

	return func(today civil.Date) (task.Task, error) {
		store, err := a.openDeck(false)
		if err != nil {
			return nil, err
		}
		return task.NewDailyJob(today, store, batch, emitter, a.logger)
	}
}
