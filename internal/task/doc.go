// Package task runs the daily scheduling pass. A Runner enqueues one DailyJob
// per day onto a TaskQueue, a WorkerPool executes queued jobs, and each job
// applies pending grades across the deck with a BatchScheduler.
package task
