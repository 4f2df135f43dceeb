package talent

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"jobscraper/internal/browser"
	"jobscraper/internal/errors"
	"jobscraper/internal/scraper"
)

// Scraper walks Talent.com result pages and opens each posting in a new tab
// for the full description.
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
	}
	return all, nil
}

func (s *Scraper) scrapeKeyword(ctx context.Context, page playwright.Page, keyword string, q scraper.Query) ([]scraper.RawPosting, error) {
	target := SearchURL(keyword, q.Location)
	s.opts.Log.Info().Str("keyword", keyword).Str("url", target).Msg("Searching")
	if err := browser.Goto(ctx, page, s.opts.Limiter, target); err != nil {
		return nil, err
	}

	var out []scraper.RawPosting
	for pageNum := 1; pageNum <= q.Pages; pageNum++ {
		if _, err := page.WaitForSelector(cardSelector, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			_ = s.opts.Screenshots.CaptureAndLog(page, "talent-no-results", "Talent.com: no job cards rendered")
			break
		}

		html, err := page.Content()
		if err != nil {
			return out, errors.Wrapf(err, "read results page %d", pageNum)
		}
		listings, err := ParseListings(html, q.Location)
		if err != nil {
			return out, err
		}
		s.opts.Log.Info().Int("page", pageNum).Int("cards", len(listings)).Msg("Parsed results page")

		for _, raw := range listings {
			if !s.opts.SkipDetails && raw.URL != "" {
				desc, err := s.detail(ctx, page, scraper.AbsoluteURL(baseURL, raw.URL))
				if err != nil {
					if ctx.Err() != nil {
						return out, ctx.Err()
					}
					s.opts.Log.Debug().Err(err).Str("title", raw.Title).Msg("Detail page unavailable, keeping snippet")
				}
				raw.Description = scraper.PreferLonger(raw.Description, desc)
			}
			out = append(out, raw)
			if err := browser.RandomDelay(ctx, 1000, 2000); err != nil {
				return out, err
			}
		}

		if pageNum == q.Pages {
			break
		}
		next, ok := NextPageHref(html, pageNum)
		if !ok {
			s.opts.Log.Info().Int("page", pageNum).Msg("No more pages")
			break
		}
		if err := browser.Goto(ctx, page, s.opts.Limiter, next); err != nil {
			return out, err
		}
		if err := browser.RandomDelay(ctx, 3000, 5000); err != nil {
			return out, err
		}
	}
	return out, nil
}

// detail opens target in a separate tab so the results page keeps its state.
func (s *Scraper) detail(ctx context.Context, page playwright.Page, target string) (string, error) {
	tab, err := page.Context().NewPage()
	if err != nil {
		return "", err
	}
	defer tab.Close()

	if err := browser.Goto(ctx, tab, s.opts.Limiter, target); err != nil {
		return "", err
	}
	if err := browser.RandomDelay(ctx, 2000, 3000); err != nil {
		return "", err
	}
	html, err := tab.Content()
	if err != nil {
		return "", err
	}
	return ParseDetail(html)
}
