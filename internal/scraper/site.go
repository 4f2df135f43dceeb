package scraper

import (
	"strings"

	"github.com/rs/zerolog"

	"jobscraper/internal/browser"
	"jobscraper/utils"
)

// SiteOptions carries what every platform scraper needs besides the page.
type SiteOptions struct {
	Limiter     *browser.HostLimiter
	Screenshots *utils.ScreenshotDebugger
	Log         zerolog.Logger

	// SkipDetails keeps the listing snippet instead of opening each posting's
	// detail view for the full description.
	SkipDetails bool
}

// Blocked reports whether an HTML snapshot looks like a bot wall.
func Blocked(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "captcha") || strings.Contains(lower, "blocked")
}

// PreferLonger returns detail when it carries more text than snippet.
func PreferLonger(snippet, detail string) string {
	if len(strings.TrimSpace(detail)) > len(strings.TrimSpace(snippet)) {
		return strings.TrimSpace(detail)
	}
	return strings.TrimSpace(snippet)
}
