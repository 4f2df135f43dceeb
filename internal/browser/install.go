package browser

import (
	"os"
	"path/filepath"
)

// InstallStatus describes whether a Chromium build is present for Playwright.
type InstallStatus struct {
	Available bool   `json:"available"`
	Path      string `json:"path"`
	Message   string `json:"message"`
}

// BrowsersPath returns PLAYWRIGHT_BROWSERS_PATH or the driver's default cache.
func BrowsersPath() string {
	if p := os.Getenv("PLAYWRIGHT_BROWSERS_PATH"); p != "" {
		return p
	}
	if cache, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cache, "ms-playwright")
	}
	return "/ms-playwright"
}

// CheckInstallation looks for a chromium build under BrowsersPath.
func CheckInstallation() InstallStatus {
	return checkInstallationAt(BrowsersPath())
}

func checkInstallationAt(path string) InstallStatus {
	for _, pattern := range []string{"chromium-*", "chromium_headless_shell-*", "chrome-*"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err == nil && len(matches) > 0 {
			return InstallStatus{Available: true, Path: path, Message: "Chromium browser found"}
		}
	}
	return InstallStatus{Available: false, Path: path, Message: "Browser not found - may need installation"}
}
