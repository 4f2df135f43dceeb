package browser

import (
	"math/rand"

	"github.com/playwright-community/playwright-go"

	"jobscraper/internal/errors"
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

var launchArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--disable-setuid-sandbox",
}

// PlaywrightManager owns the Playwright driver and one Chromium instance.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright starts the driver and launches Chromium.
func NewPlaywright(headless bool) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, errors.Wrap(err, "could not start playwright")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, errors.Wrap(err, "could not launch chromium")
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext creates an isolated browser context that looks like a desktop
// Chrome in New York.
func (pm *PlaywrightManager) NewContext() (playwright.BrowserContext, error) {
	bctx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:   playwright.String(userAgents[rand.Intn(len(userAgents))]),
		Viewport:    &playwright.Size{Width: 1920, Height: 1080},
		Locale:      playwright.String("en-US"),
		TimezoneId:  playwright.String("America/New_York"),
		Permissions: []string{"geolocation"},
		Geolocation: &playwright.Geolocation{Latitude: 40.7128, Longitude: -74.0060},
		ColorScheme: playwright.ColorSchemeLight,
		HasTouch:    playwright.Bool(false),
		IsMobile:    playwright.Bool(false),
		ExtraHttpHeaders: map[string]string{
			"Accept-Language": "en-US,en;q=0.9",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create browser context")
	}
	if err := bctx.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		_ = bctx.Close()
		return nil, errors.Wrap(err, "could not install stealth script")
	}
	return bctx, nil
}

// Close shuts down the browser and the driver.
func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			return err
		}
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}

// Session is one browser context handing out pages for a single run.
type Session struct {
	manager *PlaywrightManager
	context playwright.BrowserContext
}

// NewSession launches a browser and opens a context on it.
func NewSession(headless bool) (*Session, error) {
	pm, err := NewPlaywright(headless)
	if err != nil {
		return nil, err
	}
	bctx, err := pm.NewContext()
	if err != nil {
		_ = pm.Close()
		return nil, err
	}
	return &Session{manager: pm, context: bctx}, nil
}

// NewPage opens a page in the session context.
func (s *Session) NewPage() (playwright.Page, error) {
	return s.context.NewPage()
}

// Close releases the context and the browser.
func (s *Session) Close() error {
	if err := s.context.Close(); err != nil {
		_ = s.manager.Close()
		return err
	}
	return s.manager.Close()
}
