package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eliasstats/utils"

	"github.com/robfig/cron/v3"
)

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}

// Daemon runs a scrape right away and then on every tick of spec until ctx
// is done. A tick that fires while a run is still going is skipped.
func (s *Scraper) Daemon(ctx context.Context, spec string) error {
	c := cron.New(
		cron.WithLogger(cronLogger{}),
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)
	_, err := c.AddFunc(spec, func() { s.scheduledRun(ctx) })
	if err != nil {
		return utils.ErrorWithTrace(fmt.Errorf("cron spec %q: %w", spec, err))
	}

	slog.Info("scrape daemon started", "schedule", spec)
	s.scheduledRun(ctx)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("scrape daemon stopped")
	return nil
}

func (s *Scraper) scheduledRun(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if runID, err := s.RunNew(ctx); err != nil {
		slog.Error("scheduled scrape failed", "run", runID, "err", err)
	}
}
