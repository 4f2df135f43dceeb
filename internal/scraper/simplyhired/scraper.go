package simplyhired

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"jobscraper/internal/browser"
	"jobscraper/internal/errors"
	"jobscraper/internal/scraper"
)

// Scraper walks SimplyHired result pages and opens each card's detail panel.
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
		if _, err := page.WaitForSelector(titleSelector, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			_ = s.opts.Screenshots.CaptureAndLog(page, "simplyhired-no-results", "SimplyHired: no job titles rendered")
			break
		}
		browser.ClickFirstVisible(page, closeModalSelector)

		html, err := page.Content()
		if err != nil {
			return out, errors.Wrapf(err, "read results page %d", pageNum)
		}
		cards, err := parseCards(html, q.Location)
		if err != nil {
			return out, err
		}
		s.opts.Log.Info().Int("page", pageNum).Int("cards", len(cards)).Msg("Parsed results page")

		for _, c := range cards {
			raw := c.raw
			if !s.opts.SkipDetails {
				if d, err := s.detail(ctx, page, c.index); err == nil {
					raw = d.Apply(raw)
				} else if ctx.Err() != nil {
					return out, ctx.Err()
				} else {
					s.opts.Log.Debug().Err(err).Str("title", raw.Title).Msg("Detail panel unavailable, keeping snippet")
				}
			}
			out = append(out, raw)
			if err := browser.RandomDelay(ctx, 500, 1000); err != nil {
				return out, err
			}
		}

		if pageNum == q.Pages {
			break
		}
		if !browser.ClickFirstVisible(page, nextPageSelectors...) {
			s.opts.Log.Info().Int("page", pageNum).Msg("No more pages")
			break
		}
		if err := browser.RandomDelay(ctx, 3000, 5000); err != nil {
			return out, err
		}
	}
	return out, nil
}

// detail clicks the index-th card title and reads the panel it opens.
func (s *Scraper) detail(ctx context.Context, page playwright.Page, index int) (Detail, error) {
	title := page.Locator(cardSelector).Nth(index).Locator(titleSelector).First()
	if err := title.Click(); err != nil {
		return Detail{}, err
	}
	if err := browser.RandomDelay(ctx, 2000, 3000); err != nil {
		return Detail{}, err
	}
	html, err := page.Content()
	if err != nil {
		return Detail{}, err
	}
	return ParseDetail(html)
}
