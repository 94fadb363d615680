package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"eliasstats/archive"
	"eliasstats/config"
	"eliasstats/db"
	"eliasstats/elias"
	"eliasstats/notify"
	"eliasstats/parse"
	"eliasstats/utils"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("eliasstats/scrape")

// Fetcher is the part of elias.Client a run needs.
type Fetcher interface {
	EstablishSession(ctx context.Context) (*goquery.Document, error)
	FetchReport(ctx context.Context, reportURL string) (string, error)
}

// Target is one report to download.
type Target struct {
	Category string
	Slug     string
	URL      string
}

type fetched struct {
	Target
	Content string
	Err     error
}

type Scraper struct {
	Fetcher     Fetcher
	Publisher   notify.Publisher
	Uploader    archive.Uploader
	Reports     []config.Report
	DownloadDir string
	Limiter     *rate.Limiter
	Timeout     time.Duration
	// OnFinish runs after every run, successful or not.
	OnFinish func(notify.RunSummary)

	mu sync.Mutex
}

// New builds a scraper from the loaded config. uploader may be nil.
func New(fetcher Fetcher, publisher notify.Publisher, uploader archive.Uploader) *Scraper {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Scraper{
		Fetcher:     fetcher,
		Publisher:   publisher,
		Uploader:    uploader,
		Reports:     config.KnownReports,
		DownloadDir: config.DownloadDir,
		Limiter:     rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		Timeout:     config.RunTimeout,
	}
}

// RunNew records a new run and executes it.
func (s *Scraper) RunNew(ctx context.Context) (int64, error) {
	runID, err := db.InsertRun()
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return runID, s.Run(ctx, runID)
}

// Run executes the scrape recorded as runID. Data from the previous run is
// cleared first. Any error fails the run and is returned.
func (s *Scraper) Run(ctx context.Context, runID int64) error {
	// runs share the data tables, so they never overlap within a process
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	ctx, span := tracer.Start(ctx, "scrape:Run")
	defer span.End()
	span.SetAttributes(attribute.Int64("run.id", runID))

	log := slog.With("run", runID)
	log.Info("starting scrape run")

	categories, records, err := s.run(ctx, log, runID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape run failed")
	}
	summary, err := finishRun(log, runID, categories, records, err)

	// the run is already recorded, so publishing never fails it
	if pubErr := s.Publisher.PublishRun(context.WithoutCancel(ctx), summary); pubErr != nil {
		log.Warn("failed to publish run summary", "err", pubErr)
	}
	if s.OnFinish != nil {
		s.OnFinish(summary)
	}
	return err
}

// finishRun records the outcome of a run and builds the summary published
// for it. The summary reports an error whenever the run could not be
// recorded as a success.
func finishRun(log *slog.Logger, runID int64, categories, records int, runErr error) (notify.RunSummary, error) {
	summary := notify.RunSummary{RunID: runID, Categories: categories, Records: records}
	err := runErr
	if err != nil {
		log.Error("scrape run failed", "err", err)
		if failErr := db.FailRun(runID, err.Error()); failErr != nil {
			err = errors.Join(err, failErr)
		}
	} else if finishErr := db.FinishRun(runID, categories); finishErr != nil {
		err = utils.ErrorWithTrace(finishErr)
		log.Error("failed to record finished run", "err", err)
	}

	if err != nil {
		summary.Status, summary.Error = db.RunError, err.Error()
	} else {
		summary.Status = db.RunSuccess
		log.Info("finished scrape run", "categories", categories, "records", records)
	}
	summary.FinishedAt = time.Now().UTC()
	return summary, err
}

func (s *Scraper) run(ctx context.Context, log *slog.Logger, runID int64) (int, int, error) {
	removed, err := archive.Cleanup(s.DownloadDir)
	if err != nil {
		log.Warn("download dir cleanup incomplete", "dir", s.DownloadDir, "err", err)
	} else {
		log.Info("cleaned download dir", "dir", s.DownloadDir, "removed", removed)
	}
	if err := db.TruncateData(); err != nil {
		return 0, 0, utils.ErrorWithTrace(err)
	}
	if err := db.StartRun(runID); err != nil {
		return 0, 0, utils.ErrorWithTrace(err)
	}

	doc, err := s.Fetcher.EstablishSession(ctx)
	if err != nil {
		return 0, 0, utils.ErrorWithTrace(fmt.Errorf("establishing session: %w", err))
	}
	targets := s.targets(doc)
	log.Info("fetching reports", "count", len(targets), "configured", len(s.Reports))

	reports, err := s.fetchAll(ctx, targets)
	if err != nil {
		return 0, 0, err
	}

	categories, records := 0, 0
	for _, r := range reports {
		if r.Err != nil {
			log.Warn("no content for report", "category", r.Category, "url", r.URL, "err", r.Err)
			continue
		}
		n, err := s.store(ctx, log, runID, r)
		if err != nil {
			return categories, records, err
		}
		if n > 0 {
			categories++
			records += n
		}
	}
	return categories, records, nil
}

// targets lists the configured reports followed by any report the page links
// to that is not configured.
func (s *Scraper) targets(doc *goquery.Document) []Target {
	targets := make([]Target, 0, len(s.Reports))
	seen := map[string]bool{}
	for _, r := range s.Reports {
		targets = append(targets, Target{Category: strings.ToUpper(r.Name), Slug: r.Slug, URL: r.URL()})
		seen[r.URL()] = true
	}
	for _, link := range elias.DiscoverLinks(doc) {
		if seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		slog.Info("found extra report", "category", link.Name, "url", link.URL)
		targets = append(targets, Target{Category: strings.ToUpper(link.Name), Slug: link.Slug, URL: link.URL})
	}
	return targets
}

// fetchAll downloads every target concurrently under the rate limiter. A
// failed download only marks its own result; the run fails when nothing
// could be downloaded.
func (s *Scraper) fetchAll(ctx context.Context, targets []Target) ([]fetched, error) {
	results := make([]fetched, len(targets))
	wg := sync.WaitGroup{}
	okCount := atomic.Int64{}

	for i, t := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i].Target = t
			if err := s.Limiter.Wait(ctx); err != nil {
				results[i].Err = utils.ErrorWithTrace(err)
				return
			}
			content, err := s.Fetcher.FetchReport(ctx, t.URL)
			if err != nil {
				results[i].Err = err
				return
			}
			results[i].Content = content
			okCount.Add(1)
		}()
	}
	wg.Wait()

	if len(targets) > 0 && okCount.Load() == 0 {
		errs := make([]error, 0, len(results))
		for _, r := range results {
			errs = append(errs, fmt.Errorf("%s: %w", r.Slug, r.Err))
		}
		return nil, utils.ErrorWithTrace(fmt.Errorf("no report could be downloaded: %w", errors.Join(errs...)))
	}
	return results, nil
}

// store archives and persists one report and returns how many records it
// produced. Reports without a dedicated table count their generic lines.
func (s *Scraper) store(ctx context.Context, log *slog.Logger, runID int64, r fetched) (int, error) {
	log = log.With("category", r.Category, "slug", r.Slug)

	path, err := archive.Save(s.DownloadDir, r.Slug, r.Content)
	if err != nil {
		log.Warn("failed to save local copy", "err", err)
	} else if s.Uploader != nil {
		if id, err := s.Uploader.Upload(ctx, path); err != nil {
			log.Warn("failed to upload local copy", "path", path, "err", err)
		} else {
			log.Debug("uploaded local copy", "path", path, "file", id)
		}
	}

	err = db.InsertRawData(db.RawData{
		Category:     r.Category,
		CategorySlug: r.Slug,
		SourceURL:    r.URL,
		RawContent:   r.Content,
		ScrapeRunID:  runID,
	})
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	log.Info("stored raw report", "chars", len(r.Content))

	recs, known := parse.DecodeSlug(r.Slug, r.Content)
	if len(recs) == 0 {
		log.Warn("decoder returned no records")
		return 0, nil
	}

	var n int
	if table, ok := db.TableFor(r.Slug); known && ok {
		n, err = db.InsertRecords(table, runID, recs)
	} else {
		n, err = db.InsertGenericLines(runID, r.Slug, recs)
	}
	if err != nil {
		return 0, utils.ErrorWithTrace(fmt.Errorf("storing %s: %w", r.Slug, err))
	}
	log.Info("stored records", "records", n, "known", known)
	return n, nil
}
