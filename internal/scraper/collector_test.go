package scraper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	playwright.Page
	mu     *sync.Mutex
	closed *int
}

func (p fakePage) Close(...playwright.PageCloseOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.closed++
	return nil
}

type fakePages struct {
	mu     sync.Mutex
	closed int
	fail   bool
}

func (f *fakePages) NewPage() (playwright.Page, error) {
	if f.fail {
		return nil, errors.New("browser gone")
	}
	return fakePage{mu: &f.mu, closed: &f.closed}, nil
}

type fakeScraper struct {
	name  string
	raws  []RawPosting
	err   error
	delay time.Duration
	gotQ  Query
}

func (f *fakeScraper) Name() string    { return f.name }
func (f *fakeScraper) BaseURL() string { return "https://" + f.name + ".example" }
func (f *fakeScraper) Scrape(ctx context.Context, _ playwright.Page, q Query) ([]RawPosting, error) {
	f.gotQ = q
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.raws, f.err
}

var collectNow = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return collectNow }

func TestCollector_PreservesScraperOrder(t *testing.T) {
	slow := &fakeScraper{name: "slow", delay: 30 * time.Millisecond, raws: []RawPosting{
		{Title: "A", Company: "Acme", URL: "/a"},
	}}
	fast := &fakeScraper{name: "fast", raws: []RawPosting{
		{Title: "B", Company: "Acme", URL: "/b"},
		{Title: "C", Company: "Acme", URL: "/c"},
	}}
	pages := &fakePages{}

	var progress []int
	var mu sync.Mutex
	got, err := NewCollector(pages, 2, clock).Collect(context.Background(), []Scraper{slow, fast}, Query{Keywords: []string{"go"}, Pages: 1}, func(n int) {
		mu.Lock()
		progress = append(progress, n)
		mu.Unlock()
	})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Title, got[1].Title, got[2].Title})
	assert.Equal(t, "slow", got[0].Source, "source defaults to scraper name")
	assert.Equal(t, "https://slow.example/a", got[0].URL)
	assert.Equal(t, 2, pages.closed)
	assert.Equal(t, []string{"go"}, slow.gotQ.Keywords)
	assert.Len(t, progress, 2)
	assert.Equal(t, 3, progress[len(progress)-1])
}

func TestCollector_ToleratesFailures(t *testing.T) {
	broken := &fakeScraper{name: "broken", err: errors.New("layout changed"), raws: []RawPosting{
		{Title: "Partial", Company: "Acme"},
	}}
	empty := &fakeScraper{name: "empty"}
	invalid := &fakeScraper{name: "invalid", raws: []RawPosting{{Title: "", Company: "Acme"}}}

	got, err := NewCollector(&fakePages{}, 1, clock).Collect(context.Background(), []Scraper{broken, empty, invalid}, Query{}, nil)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Partial", got[0].Title)
}

func TestCollector_PageFailureSkipsScraper(t *testing.T) {
	s := &fakeScraper{name: "x", raws: []RawPosting{{Title: "A", Company: "Acme"}}}
	got, err := NewCollector(&fakePages{fail: true}, 1, clock).Collect(context.Background(), []Scraper{s}, Query{}, nil)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollector_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &fakeScraper{name: "x", delay: time.Second}

	_, err := NewCollector(&fakePages{}, 1, clock).Collect(ctx, []Scraper{s}, Query{}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
