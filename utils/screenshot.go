package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// DefaultScreenshotDir is where debug captures land when nothing is configured.
var DefaultScreenshotDir = filepath.Join(".", "logs", "screenshots")

// ScreenshotDebugger handles debug screenshots
type ScreenshotDebugger struct {
	outputDir string
	log       zerolog.Logger
}

// NewScreenshotDebugger returns a debugger writing under dir. An empty dir
// disables capturing.
func NewScreenshotDebugger(dir string, log zerolog.Logger) *ScreenshotDebugger {
	return &ScreenshotDebugger{outputDir: dir, log: log}
}

// Filename builds "<name>_<timestamp>.png".
func Filename(name string, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", name, at.UTC().Format("2006-01-02_15-04-05"))
}

// CaptureAndLog saves a full-page screenshot and logs message alongside it.
func (s *ScreenshotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	if s == nil || s.outputDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.outputDir, Filename(name, time.Now()))
	s.log.Warn().Str("screenshot", path).Msg(message)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to capture screenshot")
		return err
	}
	return nil
}
