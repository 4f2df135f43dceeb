package scraper

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobscraper/internal/logger"
	"jobscraper/internal/models"
)

// PageSource hands out fresh browser pages.
type PageSource interface {
	NewPage() (playwright.Page, error)
}

// Collector runs scrapers and normalizes what they return.
type Collector struct {
	pages       PageSource
	concurrency int
	now         func() time.Time
	log         zerolog.Logger
}

// NewCollector returns a Collector running at most concurrency scrapers at once.
func NewCollector(pages PageSource, concurrency int, now func() time.Time) *Collector {
	if concurrency < 1 {
		concurrency = 1
	}
	if now == nil {
		now = time.Now
	}
	return &Collector{
		pages:       pages,
		concurrency: concurrency,
		now:         now,
		log:         logger.For("collector"),
	}
}

// Collect runs every scraper on its own page and returns the normalized
// postings in scraper order. A failing scraper contributes whatever it
// gathered before failing; only context cancellation is returned as an error.
// progress, when set, receives the running count of raw postings.
func (c *Collector) Collect(ctx context.Context, scrapers []Scraper, q Query, progress func(int)) ([]models.JobPosting, error) {
	results := make([][]RawPosting, len(scrapers))
	var total atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, s := range scrapers {
		i, s := i, s
		g.Go(func() error {
			log := c.log.With().Str("platform", s.Name()).Logger()
			log.Info().Msgf("▶️ Starting scraper: %s", s.Name())

			page, err := c.pages.NewPage()
			if err != nil {
				log.Error().Err(err).Msg("❌ Failed to create page")
				return nil
			}
			defer func() {
				if err := page.Close(); err != nil {
					log.Debug().Err(err).Msg("page close")
				}
			}()

			raws, err := s.Scrape(gctx, page, q)
			if err != nil {
				log.Error().Err(err).Int("partial", len(raws)).Msgf("❌ Error running scraper %s", s.Name())
			} else {
				log.Info().Msgf("✅ Scraper %s finished. Found %d jobs.", s.Name(), len(raws))
			}
			results[i] = raws
			n := total.Add(int64(len(raws)))
			if progress != nil {
				progress(int(n))
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	var postings []models.JobPosting
	dropped := 0
	for i, raws := range results {
		base := scrapers[i].BaseURL()
		for _, raw := range raws {
			if raw.Source == "" {
				raw.Source = scrapers[i].Name()
			}
			p, ok := Normalize(raw, base, now)
			if !ok {
				dropped++
				continue
			}
			postings = append(postings, p)
		}
	}
	c.log.Info().Int("dropped", dropped).Msgf("📦 Total jobs collected: %d", len(postings))
	return postings, nil
}
