package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jobscraper/internal/errors"
	"jobscraper/internal/logger"
	"jobscraper/internal/models"
	"jobscraper/internal/scraper"
)

// Browser is a page source that must be closed after a run.
type Browser interface {
	scraper.PageSource
	Close() error
}

// BrowserFactory opens a fresh browser for one run.
type BrowserFactory func(ctx context.Context) (Browser, error)

// ScraperFactory resolves a platform name to scrapers.
type ScraperFactory func(platform string) ([]scraper.Scraper, error)

// Service runs whole scrapes: validate, collect, ingest.
type Service struct {
	ingester    *Ingester
	browsers    BrowserFactory
	scrapers    ScraperFactory
	limits      Limits
	concurrency int
	now         func() time.Time
	log         zerolog.Logger
}

// ServiceConfig holds everything NewService needs.
type ServiceConfig struct {
	Ingester    *Ingester
	Browsers    BrowserFactory
	Scrapers    ScraperFactory
	Limits      Limits
	Concurrency int
	Now         func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		ingester:    cfg.Ingester,
		browsers:    cfg.Browsers,
		scrapers:    cfg.Scrapers,
		limits:      cfg.Limits,
		concurrency: cfg.Concurrency,
		now:         now,
		log:         logger.For("service"),
	}
}

// Prepare validates and clamps req and resolves its platform, returning a
// run context ready for Run. Every error it returns is a validation error.
func (s *Service) Prepare(req Request) (*RunContext, []scraper.Scraper, error) {
	clean, err := req.Sanitize(s.limits)
	if err != nil {
		return nil, nil, err
	}
	scrapers, err := s.scrapers(clean.Platform)
	if err != nil {
		return nil, nil, err
	}
	return NewRun(clean, s.now()), scrapers, nil
}

// Execute runs a prepared run to completion and records the outcome on rc.
func (s *Service) Execute(ctx context.Context, rc *RunContext, scrapers []scraper.Scraper) (*RunContext, error) {
	log := s.log.With().Str("run_id", rc.ID).Logger()
	log.Info().
		Strs("keywords", rc.Request.Keywords).
		Int("pages", rc.Request.Pages).
		Str("location", rc.Request.Location).
		Int("scrapers", len(scrapers)).
		Msg("🚀 Starting scrape run")

	postings, err := s.collect(ctx, rc, scrapers)
	if err != nil {
		rc.finish(s.now(), err)
		return rc, err
	}

	res, err := s.ingester.Ingest(ctx, postings)
	if err != nil {
		rc.finish(s.now(), err)
		return rc, err
	}
	rc.Result = res
	rc.finish(s.now(), nil)
	log.Info().
		Dur("elapsed", rc.FinishedAt.Sub(rc.StartedAt)).
		Int("admitted", len(res.Admitted)).
		Msg("🏁 Scrape run completed")
	return rc, nil
}

// Run is Prepare followed by Execute.
func (s *Service) Run(ctx context.Context, req Request) (*RunContext, error) {
	rc, scrapers, err := s.Prepare(req)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, rc, scrapers)
}

func (s *Service) collect(ctx context.Context, rc *RunContext, scrapers []scraper.Scraper) ([]models.JobPosting, error) {
	b, err := s.browsers(ctx)
	if err != nil {
		return nil, errors.WithKind(errors.Wrap(err, "start browser"), errors.KindExtraction)
	}
	defer func() {
		if err := b.Close(); err != nil {
			s.log.Warn().Err(err).Msg("browser close")
		}
	}()

	q := scraper.Query{
		Keywords: rc.Request.Keywords,
		Location: rc.Request.Location,
		Pages:    rc.Request.Pages,
	}
	c := scraper.NewCollector(b, s.concurrency, s.now)
	return c.Collect(ctx, scrapers, q, rc.setCollected)
}
