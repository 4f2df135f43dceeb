package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstText returns the trimmed text of the first selector in the chain that
// matches something non-empty inside sel.
func FirstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// FirstAttr is FirstText for an attribute.
func FirstAttr(sel *goquery.Selection, attr string, selectors ...string) string {
	for _, s := range selectors {
		if v, ok := sel.Find(s).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// LongestText returns the text of the first selector whose content is at
// least min characters long, or the longest candidate seen otherwise.
func LongestText(sel *goquery.Selection, min int, selectors ...string) string {
	best := ""
	for _, s := range selectors {
		text := strings.TrimSpace(sel.Find(s).First().Text())
		if len(text) >= min {
			return text
		}
		if len(text) > len(best) {
			best = text
		}
	}
	return best
}

// Document parses an HTML snapshot.
func Document(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
