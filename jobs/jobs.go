package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"eliasstats/db"
	"eliasstats/utils"
)

// Runner executes one recorded scrape run.
type Runner interface {
	Run(ctx context.Context, runID int64) error
}

type Worker struct {
	Id     int
	isIdle atomic.Bool
}

func NewWorker(id int) *Worker {
	w := &Worker{Id: id}
	w.isIdle.Store(true)
	return w
}

func (w *Worker) IsIdle() bool {
	return w.isIdle.Load()
}

func (w *Worker) DoYourJob(ctx context.Context, runner Runner, run *db.ScrapeRun) {
	defer w.isIdle.Store(true)
	log := slog.With("worker", w.Id, "run", run.ID)
	log.Info("picked up queued run", "queued_at", run.QueuedAt)
	if err := runner.Run(ctx, run.ID); err != nil {
		log.Error("queued run failed", "err", err)
		return
	}
	log.Info("queued run finished")
}

// Scheduler hands queued runs to idle workers.
type Scheduler struct {
	Id           int
	MaxWorkers   int
	PollInterval time.Duration
	Workers      []*Worker
	Runner       Runner
}

func NewScheduler(id int, maxWorkers int, pollInterval time.Duration, runner Runner) *Scheduler {
	s := Scheduler{
		Id:           id,
		MaxWorkers:   maxWorkers,
		PollInterval: pollInterval,
		Workers:      make([]*Worker, 0, maxWorkers),
		Runner:       runner,
	}
	for i := range maxWorkers {
		s.Workers = append(s.Workers, NewWorker(i))
	}
	return &s
}

// Start polls until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll claims at most one queued run and reports whether a worker took it.
func (s *Scheduler) poll(ctx context.Context) bool {
	w := s.GetIdleWorker()
	if w == nil {
		return false
	}
	if !w.isIdle.CompareAndSwap(true, false) {
		return false
	}

	run, err := db.ClaimQueuedRun()
	if errors.Is(err, db.ErrQueueEmpty) {
		w.isIdle.Store(true)
		return false
	} else if err != nil {
		w.isIdle.Store(true)
		slog.Error("failed to claim queued run", "scheduler", s.Id, "err", utils.ErrorWithTrace(err))
		return false
	}
	go w.DoYourJob(ctx, s.Runner, run)
	return true
}

func (s *Scheduler) GetIdleWorker() *Worker {
	for _, w := range s.Workers {
		if w.IsIdle() {
			return w
		}
	}
	return nil
}

// StaleRunsJanitor fails runs that have been running for longer than
// olderThan, checking every interval until ctx is done.
func StaleRunsJanitor(ctx context.Context, interval, olderThan time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.ResetStaleRuns(olderThan)
			if err != nil {
				slog.Error("failed to reset stale runs", "err", err)
				continue
			}
			if n > 0 {
				slog.Warn("reset stale runs", "count", n, "older_than", olderThan)
			}
		}
	}
}
