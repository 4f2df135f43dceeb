package pipeline

import (
	"strings"

	"jobscraper/internal/errors"
	"jobscraper/internal/scraper"
	"jobscraper/internal/scraper/glassdoor"
	"jobscraper/internal/scraper/simplyhired"
	"jobscraper/internal/scraper/talent"
)

// PlatformAll selects the default platform set.
const PlatformAll = "all"

// ScrapersFor resolves a platform name to the scrapers it runs. An empty name
// or "all" runs SimplyHired and Talent.com; Glassdoor only runs when asked for
// by name because it blocks headless sessions so often.
func ScrapersFor(platform string, opts scraper.SiteOptions) ([]scraper.Scraper, error) {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "", PlatformAll:
		return []scraper.Scraper{simplyhired.New(opts), talent.New(opts)}, nil
	case "simplyhired":
		return []scraper.Scraper{simplyhired.New(opts)}, nil
	case "talent", "talent.com":
		return []scraper.Scraper{talent.New(opts)}, nil
	case "glassdoor":
		return []scraper.Scraper{glassdoor.New(opts)}, nil
	default:
		return nil, errors.Validationf("unknown platform %q (expected simplyhired, talent, glassdoor or all)", platform)
	}
}
