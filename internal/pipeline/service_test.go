package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jobscraper/internal/errors"
	"jobscraper/internal/scraper"
)

type stubPage struct{ playwright.Page }

func (stubPage) Close(...playwright.PageCloseOptions) error { return nil }

type stubBrowser struct{ closed bool }

func (b *stubBrowser) NewPage() (playwright.Page, error) { return stubPage{}, nil }
func (b *stubBrowser) Close() error                      { b.closed = true; return nil }

type stubScraper struct {
	name  string
	raws  []scraper.RawPosting
	query scraper.Query
}

func (s *stubScraper) Name() string    { return s.name }
func (s *stubScraper) BaseURL() string { return "https://example.com" }
func (s *stubScraper) Scrape(_ context.Context, _ playwright.Page, q scraper.Query) ([]scraper.RawPosting, error) {
	s.query = q
	return s.raws, nil
}

func newTestService(t *testing.T, now time.Time, b *stubBrowser, sc *stubScraper) *Service {
	t.Helper()
	ing, _ := newTestIngester(t, now)
	svc := NewService(ServiceConfig{
		Ingester: ing,
		Browsers: func(context.Context) (Browser, error) { return b, nil },
		Scrapers: func(platform string) ([]scraper.Scraper, error) {
			if platform == "bogus" {
				return nil, apperrors.Validation("unknown platform")
			}
			return []scraper.Scraper{sc}, nil
		},
		Limits:      Limits{MaxPages: 5, MaxKeywords: 3},
		Concurrency: 2,
		Now:         fixedClock(now),
	})
	svc.log = zerolog.Nop()
	return svc
}

func TestServiceRun(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	b := &stubBrowser{}
	sc := &stubScraper{name: "SimplyHired", raws: []scraper.RawPosting{
		{Title: "Go Engineer", Company: "Acme", URL: "/job/1", PostedText: "2 hours ago"},
		{Title: "Go Engineer", Company: "Acme", URL: "/job/1", PostedText: "5 hours ago"},
		{Title: "", Company: "Nameless"},
	}}
	svc := newTestService(t, now, b, sc)

	rc, err := svc.Run(context.Background(), Request{Keywords: []string{"go", "rust", "zig", "odin"}, Pages: 9, Location: "Remote"})
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, rc.Status)
	assert.True(t, b.closed)
	assert.Equal(t, []string{"go", "rust", "zig"}, sc.query.Keywords)
	assert.Equal(t, 5, sc.query.Pages)
	assert.Equal(t, "Remote", sc.query.Location)
	assert.Equal(t, 3, rc.Collected())

	require.NotNil(t, rc.Result)
	assert.Equal(t, 2, rc.Result.Collected, "records without a title never reach the pipeline")
	assert.Equal(t, 1, rc.Result.Duplicates)
	require.Len(t, rc.Result.Admitted, 1)
	got := rc.Result.Admitted[0]
	assert.Equal(t, "https://example.com/job/1", got.URL)
	assert.Equal(t, "2025-03-10T10:00:00Z", got.PostedDate)
}

func TestServiceRun_ValidationErrors(t *testing.T) {
	now := time.Now()
	svc := newTestService(t, now, &stubBrowser{}, &stubScraper{name: "x"})

	_, err := svc.Run(context.Background(), Request{Pages: 1})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.Run(context.Background(), Request{Platform: "bogus", Keywords: []string{"go"}, Pages: 1})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestServiceRun_BrowserFailure(t *testing.T) {
	now := time.Now()
	ing, _ := newTestIngester(t, now)
	svc := NewService(ServiceConfig{
		Ingester: ing,
		Browsers: func(context.Context) (Browser, error) { return nil, errors.New("chromium missing") },
		Scrapers: func(string) ([]scraper.Scraper, error) { return []scraper.Scraper{&stubScraper{name: "x"}}, nil },
	})
	svc.log = zerolog.Nop()

	rc, err := svc.Run(context.Background(), Request{Keywords: []string{"go"}, Pages: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindExtraction, apperrors.KindOf(err))
	require.NotNil(t, rc)
	assert.Equal(t, StatusError, rc.Status)
}
