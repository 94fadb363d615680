package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eliasstats/utils"
)

const (
	RunQueued  = "queued"
	RunRunning = "running"
	RunSuccess = "success"
	RunError   = "error"
)

const maxErrorMessage = 1000

var ErrQueueEmpty = errors.New("queue empty")

type ScrapeRun struct {
	ID                int64      `db:"id" json:"id"`
	QueuedAt          time.Time  `db:"queued_at" json:"queued_at"`
	StartedAt         *time.Time `db:"started_at" json:"started_at"`
	FinishedAt        *time.Time `db:"finished_at" json:"finished_at"`
	Status            string     `db:"status" json:"status"`
	CategoriesScraped int        `db:"categories_scraped" json:"categories_scraped"`
	ErrorMessage      *string    `db:"error_message" json:"error_message"`
}

const runColumns = `id, queued_at, started_at, finished_at, status, categories_scraped, error_message`

func insertRun(status string, startedAt *time.Time) (int64, error) {
	query := conn.Rebind(`
		INSERT INTO scrape_runs (queued_at, started_at, status)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	var id int64
	if err := conn.QueryRowx(query, time.Now().UTC(), startedAt, status).Scan(&id); err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return id, nil
}

// InsertRun records a run that starts immediately.
func InsertRun() (int64, error) {
	now := time.Now().UTC()
	return insertRun(RunRunning, &now)
}

// QueueRun records a run for the scheduler to pick up.
func QueueRun() (int64, error) {
	return insertRun(RunQueued, nil)
}

// ClaimQueuedRun moves the oldest queued run to running and returns it.
// ErrQueueEmpty is returned when there is nothing to claim.
func ClaimQueuedRun() (*ScrapeRun, error) {
	tx, err := conn.Beginx()
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()

	query := `SELECT ` + runColumns + ` FROM scrape_runs WHERE status = ? ORDER BY queued_at, id LIMIT 1`
	if isPostgres() {
		query += ` FOR UPDATE SKIP LOCKED`
	}
	run := ScrapeRun{}
	err = tx.Get(&run, tx.Rebind(query), RunQueued)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQueueEmpty
	}
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}

	now := time.Now().UTC()
	res, err := tx.Exec(
		tx.Rebind(`UPDATE scrape_runs SET status = ?, started_at = ? WHERE id = ? AND status = ?`),
		RunRunning, now, run.ID, RunQueued,
	)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, utils.ErrorWithTrace(err)
	} else if n == 0 {
		return nil, ErrQueueEmpty
	}
	if err := tx.Commit(); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}

	run.Status = RunRunning
	run.StartedAt = &now
	return &run, nil
}

func updateRun(id int64, query string, args ...any) error {
	res, err := conn.Exec(conn.Rebind(query), append(args, id)...)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if n == 0 {
		return utils.ErrorWithTrace(fmt.Errorf("scrape run %d: %w", id, ErrNotFound))
	}
	return nil
}

func StartRun(id int64) error {
	return updateRun(id,
		`UPDATE scrape_runs SET status = ?, started_at = ? WHERE id = ?`,
		RunRunning, time.Now().UTC(),
	)
}

func FinishRun(id int64, categories int) error {
	return updateRun(id,
		`UPDATE scrape_runs SET status = ?, finished_at = ?, categories_scraped = ?, error_message = NULL WHERE id = ?`,
		RunSuccess, time.Now().UTC(), categories,
	)
}

func FailRun(id int64, message string) error {
	return updateRun(id,
		`UPDATE scrape_runs SET status = ?, finished_at = ?, error_message = ? WHERE id = ?`,
		RunError, time.Now().UTC(), utils.Truncate(message, maxErrorMessage),
	)
}

// ResetStaleRuns fails every run that has been running for longer than
// olderThan and reports how many were reset.
func ResetStaleRuns(olderThan time.Duration) (int64, error) {
	now := time.Now().UTC()
	cutoff := now.Add(-olderThan)
	res, err := conn.Exec(
		conn.Rebind(`
			UPDATE scrape_runs
			SET status = ?, finished_at = ?, error_message = ?
			WHERE status = ? AND started_at < ?
		`),
		RunError, now, "run stalled", RunRunning, cutoff,
	)
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return n, nil
}

// SelectRuns returns the most recent runs first.
func SelectRuns(limit int) ([]ScrapeRun, error) {
	runs := []ScrapeRun{}
	query := conn.Rebind(`SELECT ` + runColumns + ` FROM scrape_runs ORDER BY id DESC LIMIT ?`)
	if err := conn.Select(&runs, query, limit); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return runs, nil
}

func SelectRun(id int64) (*ScrapeRun, error) {
	run := ScrapeRun{}
	err := conn.Get(&run, conn.Rebind(`SELECT `+runColumns+` FROM scrape_runs WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return &run, nil
}
