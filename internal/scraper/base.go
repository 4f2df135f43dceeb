// Package scraper defines the extraction boundary: the interface every job
// board implements, the raw record it produces, and the single place where raw
// records become typed postings.
package scraper

import (
	"context"

	"github.com/playwright-community/playwright-go"
)

// Query is one search request shared by every platform in a run.
type Query struct {
	Keywords []string
	Location string
	Pages    int
}

// RawPosting is a listing exactly as a site yielded it. Nothing in it has been
// cleaned or validated yet.
type RawPosting struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Description string
	URL         string
	PostedText  string
	Source      string
}

// Scraper defines the interface that all platform scrapers must implement.
type Scraper interface {
	// Scrape runs the query against the platform using page.
	Scrape(ctx context.Context, page playwright.Page, q Query) ([]RawPosting, error)

	// Name is the platform name stored as the posting source.
	Name() string

	// BaseURL is used to absolutize relative links.
	BaseURL() string
}
