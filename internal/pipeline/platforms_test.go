package pipeline

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscraper/internal/errors"
	"jobscraper/internal/scraper"
)

func names(scrapers []scraper.Scraper) []string {
	out := make([]string, 0, len(scrapers))
	for _, s := range scrapers {
		out = append(out, s.Name())
	}
	return out
}

func TestScrapersFor(t *testing.T) {
	opts := scraper.SiteOptions{Log: zerolog.Nop()}
	tests := []struct {
		platform string
		want     []string
	}{
		{"", []string{"SimplyHired", "Talent.com"}},
		{"all", []string{"SimplyHired", "Talent.com"}},
		{"ALL", []string{"SimplyHired", "Talent.com"}},
		{"SimplyHired", []string{"SimplyHired"}},
		{"talent", []string{"Talent.com"}},
		{"Talent.com", []string{"Talent.com"}},
		{"glassdoor", []string{"Glassdoor"}},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			got, err := ScrapersFor(tt.platform, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestScrapersFor_Unknown(t *testing.T) {
	_, err := ScrapersFor("monster", scraper.SiteOptions{})
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.Contains(t, err.Error(), "monster")
}
