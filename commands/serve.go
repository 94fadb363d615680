package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eliasstats/api"
	"eliasstats/config"
	"eliasstats/jobs"
	"eliasstats/notify"
	"eliasstats/utils"

	"github.com/spf13/cobra"
)

var (
	serveWorkers    int
	servePoll       time.Duration
	serveWithDaemon bool
)

func init() {
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 1, "workers executing queued runs")
	serveCmd.Flags().DurationVar(&servePoll, "poll", 10*time.Second, "how often the queue is polled")
	serveCmd.Flags().BoolVar(&serveWithDaemon, "with-daemon", false, "also scrape on the cron schedule")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the JSON API and executes runs queued through it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := openDatabase(); err != nil {
			return err
		}
		pub, stream, closePub := publisher(ctx)
		defer closePub()

		s, err := newScraper(ctx, pub)
		if err != nil {
			return err
		}
		server := api.NewServer()
		s.OnFinish = func(notify.RunSummary) { server.Purge() }
		if stream != nil {
			// runs finished by a separate daemon process
			go stream.Watch(ctx, func(summary notify.RunSummary) {
				slog.Debug("run finished elsewhere, purging cache", "run", summary.RunID, "status", summary.Status)
				server.Purge()
			})
		}

		scheduler := jobs.NewScheduler(0, serveWorkers, servePoll, s)
		go scheduler.Start(ctx)
		go jobs.StaleRunsJanitor(ctx, config.StaleAfter/2, config.StaleAfter)
		if serveWithDaemon {
			go func() {
				if err := s.Daemon(ctx, config.CronSpec); err != nil {
					slog.Error("scrape daemon stopped", "err", err)
				}
			}()
		}

		errChan := make(chan error, 1)
		go func() {
			slog.Info("api listening", "addr", config.ListenAddr)
			errChan <- server.Echo.Start(config.ListenAddr)
		}()

		select {
		case err := <-errChan:
			if !errors.Is(err, http.ErrServerClosed) {
				return utils.ErrorWithTrace(err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down api")
		return server.Echo.Shutdown(shutdownCtx)
	},
}
