package browser

import (
	"context"

	"github.com/playwright-community/playwright-go"

	"jobscraper/internal/errors"
)

// DefaultNavigationTimeout matches the generous page-load budget the job
// boards need behind their bot checks.
const DefaultNavigationTimeout = 60000

// Goto waits for the host limiter and navigates page to rawURL, waiting for
// the network to go idle.
func Goto(ctx context.Context, page playwright.Page, limiter *HostLimiter, rawURL string) error {
	if err := limiter.WaitURL(ctx, rawURL); err != nil {
		return err
	}
	if _, err := page.Goto(rawURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(DefaultNavigationTimeout),
	}); err != nil {
		return errors.Wrapf(err, "navigate %s", rawURL)
	}
	return nil
}

// Visible reports whether selector currently matches a visible element.
func Visible(page playwright.Page, selector string) bool {
	ok, err := page.Locator(selector).First().IsVisible()
	return err == nil && ok
}

// ClickFirstVisible clicks the first selector in the chain that is visible and
// reports whether anything was clicked.
func ClickFirstVisible(page playwright.Page, selectors ...string) bool {
	for _, sel := range selectors {
		if !Visible(page, sel) {
			continue
		}
		if err := page.Locator(sel).First().Click(); err == nil {
			return true
		}
	}
	return false
}
