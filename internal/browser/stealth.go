package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// stealthScript hides the most common automation fingerprints.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
`

// RandomDelay waits for a random duration between min and max milliseconds,
// returning early if ctx is done.
func RandomDelay(ctx context.Context, min, max int) error {
	d := min
	if max > min {
		d = rand.Intn(max-min+1) + min
	}
	t := time.NewTimer(time.Duration(d) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HumanScroll simulates human-like scrolling behavior
func HumanScroll(ctx context.Context, page playwright.Page) error {
	for i := 0; i < 3; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 300, 900); err != nil {
			return err
		}
	}
	_, err := page.Evaluate("window.scrollBy(0, -200)")
	return err
}

// MouseJiggle moves the mouse to a few random spots inside the viewport.
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	vp := page.ViewportSize()
	if vp == nil || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}
	for i := 0; i < 3; i++ {
		if err := page.Mouse().Move(float64(rand.Intn(vp.Width)), float64(rand.Intn(vp.Height))); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 100, 300); err != nil {
			return err
		}
	}
	return nil
}
