package jobs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"eliasstats/db"

	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	release chan struct{}
	ran     chan int64
	err     error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{release: make(chan struct{}), ran: make(chan int64, 10)}
}

func (r *fakeRunner) Run(ctx context.Context, runID int64) error {
	<-r.release
	r.ran <- runID
	return r.err
}

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, db.Open("sqlite3", filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
}

func waitIdle(t *testing.T, w *Worker) {
	t.Helper()
	require.Eventually(t, w.IsIdle, time.Second, 5*time.Millisecond)
}

func TestSchedulerPoll(t *testing.T) {
	setupTestDB(t)
	runner := newFakeRunner()
	s := NewScheduler(1, 1, time.Hour, runner)
	ctx := context.Background()

	require.False(t, s.poll(ctx))
	require.True(t, s.Workers[0].IsIdle())

	first, err := db.QueueRun()
	require.NoError(t, err)
	second, err := db.QueueRun()
	require.NoError(t, err)

	require.True(t, s.poll(ctx))
	require.False(t, s.Workers[0].IsIdle())
	require.Nil(t, s.GetIdleWorker())

	// the only worker is busy, so the second run stays queued
	require.False(t, s.poll(ctx))
	run, err := db.SelectRun(second)
	require.NoError(t, err)
	require.Equal(t, db.RunQueued, run.Status)

	runner.release <- struct{}{}
	require.Equal(t, first, <-runner.ran)
	waitIdle(t, s.Workers[0])

	require.True(t, s.poll(ctx))
	runner.release <- struct{}{}
	require.Equal(t, second, <-runner.ran)
	waitIdle(t, s.Workers[0])
}

func TestWorkerIdleAfterFailure(t *testing.T) {
	runner := newFakeRunner()
	runner.err = errors.New("boom")
	close(runner.release)

	w := NewWorker(3)
	w.isIdle.Store(false)
	w.DoYourJob(context.Background(), runner, &db.ScrapeRun{ID: 9})
	require.True(t, w.IsIdle())
	require.EqualValues(t, 9, <-runner.ran)
}

func TestSchedulerStartStops(t *testing.T) {
	setupTestDB(t)
	runner := newFakeRunner()
	close(runner.release)
	s := NewScheduler(1, 2, 5*time.Millisecond, runner)

	id, err := db.QueueRun()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case got := <-runner.ran:
		require.Equal(t, id, got)
	case <-time.After(2 * time.Second):
		t.Fatal("queued run was never picked up")
	}
	cancel()
	<-done
}

func TestStaleRunsJanitor(t *testing.T) {
	setupTestDB(t)
	id, err := db.InsertRun()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		StaleRunsJanitor(ctx, 5*time.Millisecond, -time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		run, err := db.SelectRun(id)
		return err == nil && run.Status == db.RunError
	}, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done
}
