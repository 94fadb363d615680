package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"eliasstats/config"
	"eliasstats/db"
	"eliasstats/notify"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const attendanceReport = `TEAM                           HOME ATTENDANCE           ROAD ATTENDANCE
Atlanta Hawks                   25    406,165 16,247    31    548,915 17,707
Philadelphia 76ers              0     0       0         0     0       0
TOTALS                         800 13,000,000 16,250   800 13,000,000 16,250
`

const mysteryURL = config.CDNBase + "/mystery.txt"

const statsPage = `<html><body>
<a href="` + config.CDNBase + `/attend.txt">Attendance</a>
<a href="` + mysteryURL + `">Mystery Report</a>
<a href="/news">News</a>
</body></html>`

type fakeFetcher struct {
	sessionErr error
	reports    map[string]string

	mu      sync.Mutex
	fetched []string
}

func (f *fakeFetcher) EstablishSession(ctx context.Context) (*goquery.Document, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(statsPage))
	if err != nil {
		return nil, err
	}
	doc.Url, _ = url.Parse(config.StatsPageURL)
	return doc, nil
}

func (f *fakeFetcher) FetchReport(ctx context.Context, reportURL string) (string, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, reportURL)
	f.mu.Unlock()
	content, ok := f.reports[reportURL]
	if !ok {
		return "", fmt.Errorf("GET %s: 404 Not Found", reportURL)
	}
	return content, nil
}

type fakePublisher struct {
	summaries []notify.RunSummary
}

func (p *fakePublisher) PublishRun(ctx context.Context, s notify.RunSummary) error {
	p.summaries = append(p.summaries, s)
	return nil
}

type fakeUploader struct {
	mu    sync.Mutex
	paths []string
}

func (u *fakeUploader) Upload(ctx context.Context, path string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.paths = append(u.paths, path)
	return "file-" + filepath.Base(path), nil
}

var testReports = []config.Report{
	{Name: "Attendance", Slug: "attendance", File: "attend.txt"},
	{Name: "Standings", Slug: "standings", File: "standings.txt"},
	{Name: "Head-to-Head Win Grid", Slug: "head_to_head_win_grid", File: "h2h.txt"},
}

func setup(t *testing.T, fetcher Fetcher) (*Scraper, *fakePublisher, *fakeUploader) {
	t.Helper()
	require.NoError(t, db.Open("sqlite3", filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	publisher := &fakePublisher{}
	uploader := &fakeUploader{}
	s := &Scraper{
		Fetcher:     fetcher,
		Publisher:   publisher,
		Uploader:    uploader,
		Reports:     testReports,
		DownloadDir: filepath.Join(t.TempDir(), "downloads"),
		Limiter:     rate.NewLimiter(rate.Inf, 1),
	}
	return s, publisher, uploader
}

func TestRun(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[string]string{
		testReports[0].URL(): attendanceReport,
		testReports[1].URL(): "nothing in this report looks like a standings row",
		mysteryURL:           "MYSTERY REPORT\nline one of data\nINCLUDES GAMES PLAYED\nabc\n",
	}}
	s, publisher, uploader := setup(t, fetcher)

	finished := []notify.RunSummary{}
	s.OnFinish = func(summary notify.RunSummary) { finished = append(finished, summary) }

	require.NoError(t, os.MkdirAll(s.DownloadDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.DownloadDir, "stale.txt"), []byte("old"), 0o644))

	runID, err := s.RunNew(context.Background())
	require.NoError(t, err)

	// three configured reports plus the one extra link; the attendance
	// anchor is configured already
	require.Len(t, fetcher.fetched, 4)

	run, err := db.SelectRun(runID)
	require.NoError(t, err)
	require.Equal(t, db.RunSuccess, run.Status)
	require.Equal(t, 2, run.CategoriesScraped)

	raw, err := db.SelectLatestRawData("attendance")
	require.NoError(t, err)
	require.Equal(t, "ATTENDANCE", raw.Category)
	require.Equal(t, attendanceReport, raw.RawContent)

	_, err = db.SelectLatestRawData("standings")
	require.NoError(t, err)
	_, err = db.SelectLatestRawData("head_to_head_win_grid")
	require.ErrorIs(t, err, db.ErrNotFound)

	lines, err := db.SelectGenericLines("mystery_report")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "MYSTERY REPORT", lines[0].RawLine)

	_, err = os.Stat(filepath.Join(s.DownloadDir, "stale.txt"))
	require.True(t, os.IsNotExist(err))
	saved, err := os.ReadFile(filepath.Join(s.DownloadDir, "attendance.txt"))
	require.NoError(t, err)
	require.Equal(t, attendanceReport, string(saved))
	require.Len(t, uploader.paths, 3)

	require.Len(t, publisher.summaries, 1)
	summary := publisher.summaries[0]
	require.Equal(t, runID, summary.RunID)
	require.Equal(t, db.RunSuccess, summary.Status)
	require.Equal(t, 2, summary.Categories)
	require.Equal(t, 4, summary.Records)
	require.Equal(t, publisher.summaries, finished)
}

func TestRunReplacesPreviousData(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[string]string{
		testReports[0].URL(): attendanceReport,
	}}
	s, _, _ := setup(t, fetcher)

	_, err := s.RunNew(context.Background())
	require.NoError(t, err)
	_, err = s.RunNew(context.Background())
	require.NoError(t, err)

	runs, err := db.SelectRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	lines, err := db.SelectGenericLines("mystery_report")
	require.NoError(t, err)
	require.Empty(t, lines)
	raw, err := db.SelectLatestRawData("attendance")
	require.NoError(t, err)
	require.Equal(t, runs[0].ID, raw.ScrapeRunID)
}

func TestRunSessionFailure(t *testing.T) {
	fetcher := &fakeFetcher{sessionErr: errors.New("connection refused")}
	s, publisher, _ := setup(t, fetcher)

	runID, err := s.RunNew(context.Background())
	require.ErrorContains(t, err, "connection refused")

	run, err := db.SelectRun(runID)
	require.NoError(t, err)
	require.Equal(t, db.RunError, run.Status)
	require.Contains(t, *run.ErrorMessage, "connection refused")

	require.Len(t, publisher.summaries, 1)
	require.Equal(t, db.RunError, publisher.summaries[0].Status)
	require.Empty(t, fetcher.fetched)
}

func TestRunNothingDownloaded(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[string]string{}}
	s, _, _ := setup(t, fetcher)

	runID, err := s.RunNew(context.Background())
	require.ErrorContains(t, err, "no report could be downloaded")

	run, err := db.SelectRun(runID)
	require.NoError(t, err)
	require.Equal(t, db.RunError, run.Status)
}

func TestRunQueued(t *testing.T) {
	fetcher := &fakeFetcher{reports: map[string]string{
		testReports[0].URL(): attendanceReport,
	}}
	s, _, _ := setup(t, fetcher)

	runID, err := db.QueueRun()
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background(), runID))

	run, err := db.SelectRun(runID)
	require.NoError(t, err)
	require.Equal(t, db.RunSuccess, run.Status)
	require.NotNil(t, run.StartedAt)
}

func TestFinishRunUnrecorded(t *testing.T) {
	setup(t, &fakeFetcher{})

	// the run row is gone, so the success cannot be recorded
	summary, err := finishRun(slog.Default(), 999, 3, 40, nil)
	require.ErrorIs(t, err, db.ErrNotFound)
	require.Equal(t, db.RunError, summary.Status)
	require.NotEmpty(t, summary.Error)
	require.Equal(t, 3, summary.Categories)
	require.False(t, summary.FinishedAt.IsZero())
}

func TestFinishRunSuccess(t *testing.T) {
	setup(t, &fakeFetcher{})
	runID, err := db.InsertRun()
	require.NoError(t, err)

	summary, err := finishRun(slog.Default(), runID, 2, 10, nil)
	require.NoError(t, err)
	require.Equal(t, db.RunSuccess, summary.Status)
	require.Empty(t, summary.Error)

	run, err := db.SelectRun(runID)
	require.NoError(t, err)
	require.Equal(t, 2, run.CategoriesScraped)
}

func TestDaemonRejectsBadSpec(t *testing.T) {
	s := &Scraper{}
	err := s.Daemon(context.Background(), "every now and then")
	require.Error(t, err)
}
