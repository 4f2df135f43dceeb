package simplyhired

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscraper/internal/scraper"
)

const (
	Name    = "SimplyHired"
	baseURL = "https://www.simplyhired.com"
)

const (
	cardSelector       = `div[data-testid="searchSerpJob"]`
	titleSelector      = `h2[data-testid="searchSerpJobTitle"] a`
	companySelector    = `span[data-testid="companyName"]`
	closeModalSelector = `button[data-testid="cta-closeModal"]`
	detailDateSelector = `span[data-testid="viewJobBodyPostingTimestamp"]`

	minDescriptionLength = 300
	maxDetailDateLength  = 50
)

var (
	locationSelectors = []string{`span[data-testid="searchSerpJobLocation"]`, `p.chakra-text.css-1sawo7p`}
	dateSelectors     = []string{`p[data-testid="searchSerpJobDateStamp"]`, `span.css-5yilgw`}
	snippetSelectors  = []string{`p[data-testid="searchSerpJobSnippet"]`, `p.chakra-text.css-jhqp7z`}
	salarySelectors   = []string{`p[data-testid="searchSerpJobSalaryConfirmed"]`}

	descriptionSelectors = []string{
		`aside[class*="css-"] div[class*="scroll"]`,
		`aside[class*="css-"]`,
		`div[tabindex="0"][class*="scroll"]`,
		`div.css-10747oj`,
		`div[data-testid="viewJobBodyContainer"]`,
	}

	nextPageSelectors = []string{`a[data-testid="pageNumberBlockNext"]`, `a.chakra-link.css-16mmgjw`}
)

// SearchURL builds the last-24-hours search for one keyword.
func SearchURL(keyword, location string) string {
	q := strings.ReplaceAll(strings.TrimSpace(keyword), " ", "+")
	return baseURL + "/search?q=" + q + "&l=" + url.QueryEscape(location) + "&t=1"
}

// card is a parsed listing plus its position among the result cards, which
// the scraper needs to click the right title for the detail panel.
type card struct {
	index int
	raw   scraper.RawPosting
}

// ParseListings extracts every card with a title from a results page.
// fallbackLocation is used when a card has no location of its own.
func ParseListings(html, fallbackLocation string) ([]scraper.RawPosting, error) {
	cards, err := parseCards(html, fallbackLocation)
	if err != nil {
		return nil, err
	}
	out := make([]scraper.RawPosting, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.raw)
	}
	return out, nil
}

func parseCards(html, fallbackLocation string) ([]card, error) {
	doc, err := scraper.Document(html)
	if err != nil {
		return nil, err
	}

	var cards []card
	doc.Find(cardSelector).Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(titleSelector).First().Text())
		if title == "" {
			return
		}
		href, _ := sel.Find(titleSelector).First().Attr("href")

		loc := scraper.FirstText(sel, locationSelectors...)
		if loc == "" {
			loc = fallbackLocation
		}

		cards = append(cards, card{
			index: i,
			raw: scraper.RawPosting{
				Title:       title,
				Company:     company(sel),
				Location:    loc,
				Salary:      scraper.FirstText(sel, salarySelectors...),
				Description: scraper.FirstText(sel, snippetSelectors...),
				URL:         strings.TrimSpace(href),
				PostedText:  scraper.FirstText(sel, dateSelectors...),
				Source:      Name,
			},
		})
	})
	return cards, nil
}

// company falls back to the "Company — Location" text line when the
// dedicated span is missing.
func company(sel *goquery.Selection) string {
	if c := strings.TrimSpace(sel.Find(companySelector).First().Text()); c != "" {
		return c
	}
	var found string
	sel.Find("p.chakra-text").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := p.Text()
		if before, _, ok := strings.Cut(text, "—"); ok {
			found = strings.TrimSpace(before)
			return false
		}
		return true
	})
	return found
}

// Detail is what the right-hand panel adds to a listing.
type Detail struct {
	PostedText  string
	Description string
}

// ParseDetail reads the detail panel shown after clicking a listing.
func ParseDetail(html string) (Detail, error) {
	doc, err := scraper.Document(html)
	if err != nil {
		return Detail{}, err
	}
	var d Detail
	if ts := strings.TrimSpace(doc.Find(detailDateSelector).First().Text()); ts != "" && len(ts) < maxDetailDateLength {
		d.PostedText = ts
	}
	d.Description = scraper.LongestText(doc.Selection, minDescriptionLength, descriptionSelectors...)
	return d, nil
}

// Apply merges a detail panel into raw.
func (d Detail) Apply(raw scraper.RawPosting) scraper.RawPosting {
	if d.PostedText != "" {
		raw.PostedText = d.PostedText
	}
	raw.Description = scraper.PreferLonger(raw.Description, d.Description)
	return raw
}
