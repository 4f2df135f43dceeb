package glassdoor

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"jobscraper/internal/browser"
	"jobscraper/internal/errors"
	"jobscraper/internal/scraper"
)

// Scraper loads Glassdoor results by repeatedly clicking "Show more jobs".
// Glassdoor is the most aggressive about bot checks; a blocked page ends the
// keyword with whatever was collected.
type Scraper struct {
	opts scraper.SiteOptions
}

func New(opts scraper.SiteOptions) *Scraper {
	opts.Log = opts.Log.With().Str("platform", Name).Logger()
	return &Scraper{opts: opts}
}

func (s *Scraper) Name() string    { return Name }
func (s *Scraper) BaseURL() string { return baseURL }

func (s *Scraper) Scrape(ctx context.Context, page playwright.Page, q scraper.Query) ([]scraper.RawPosting, error) {
	var all []scraper.RawPosting
	for _, keyword := range q.Keywords {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		found, err := s.scrapeKeyword(ctx, page, keyword, q)
		all = append(all, found...)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			s.opts.Log.Warn().Err(err).Str("keyword", keyword).Msg("Search failed")
		}
		if err := browser.RandomDelay(ctx, 5000, 8000); err != nil {
			return all, err
		}
	}
	return all, nil
}

func (s *Scraper) scrapeKeyword(ctx context.Context, page playwright.Page, keyword string, q scraper.Query) ([]scraper.RawPosting, error) {
	// Landing on the home page first gets the session cookies the search
	// page checks for.
	if err := browser.Goto(ctx, page, s.opts.Limiter, baseURL); err != nil {
		return nil, err
	}
	if err := browser.RandomDelay(ctx, 3000, 5000); err != nil {
		return nil, err
	}

	target := SearchURL(keyword, q.Location)
	s.opts.Log.Info().Str("keyword", keyword).Str("url", target).Msg("Searching")
	if err := browser.Goto(ctx, page, s.opts.Limiter, target); err != nil {
		return nil, err
	}
	if err := browser.RandomDelay(ctx, 6000, 9000); err != nil {
		return nil, err
	}
	if err := browser.HumanScroll(ctx, page); err != nil {
		s.opts.Log.Debug().Err(err).Msg("Scroll failed")
	}

	html, err := page.Content()
	if err != nil {
		return nil, errors.Wrap(err, "read results page")
	}
	if scraper.Blocked(html) {
		_ = s.opts.Screenshots.CaptureAndLog(page, "glassdoor-captcha", "Glassdoor: CAPTCHA or block page detected")
		return nil, nil
	}

	seen := make(map[string]bool)
	var out []scraper.RawPosting
	for load := 1; load <= q.Pages; load++ {
		if _, err := page.WaitForSelector(cardSelector, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			s.opts.Log.Info().Int("load", load).Msg("No job listings found")
			break
		}

		html, err := page.Content()
		if err != nil {
			return out, errors.Wrapf(err, "read results load %d", load)
		}
		listings, err := ParseListings(html, q.Location)
		if err != nil {
			return out, err
		}
		added := 0
		for _, l := range listings {
			if l.JobID != "" {
				if seen[l.JobID] {
					continue
				}
				seen[l.JobID] = true
			}
			out = append(out, l.Raw)
			added++
		}
		s.opts.Log.Info().Int("load", load).Int("cards", len(listings)).Int("new", added).Msg("Parsed results")

		if load == q.Pages {
			break
		}
		if !browser.ClickFirstVisible(page, showMoreSelectors...) {
			s.opts.Log.Info().Int("load", load).Msg("No more jobs to load")
			break
		}
		if err := browser.RandomDelay(ctx, 3000, 5000); err != nil {
			return out, err
		}
	}
	return out, nil
}
