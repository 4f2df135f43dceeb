package talent

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscraper/internal/scraper"
)

const (
	Name    = "Talent.com"
	baseURL = "https://www.talent.com"
)

const (
	cardSelector    = `section[data-testid^="jobcard-container"]`
	snippetSelector = `span[class*="sc-fcd630a4-5"]`
	signInParam     = "showSignInModal=true"

	maxDateLength        = 50
	minDescriptionLength = 100
)

var (
	titleSelectors    = []string{`h2[color="#30183F"]`, `h2.sc-fcd630a4-20`}
	linkSelectors     = []string{`a[href*="/view?id="]`, `a.sc-d93925ca-5`}
	companySelectors  = []string{`span[color="#691F74"]`, `span.sc-fcd630a4-12`}
	locationSelectors = []string{`span[color="#222222"]`, `span.sc-fcd630a4-11`}

	paginationSelectors = []string{`nav.sc-5ec0130d-0`, `nav[class*="eRQgGg"]`}

	descriptionSelectors = []string{
		`div.sc-fcd630a4-10.sc-fcd630a4-11.sc-6cde2aa1-10.cgBMEk.iroSSa.bEMPBB`,
		`div[class*="fcd630a4"]`,
		`div[class*="cgBMEk"]`,
		`span[class*="sc-fcd630a4-15"]`,
	}
	mainContentSelector = `article, main, div[class*="jobcard"]`

	salaryPattern = regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$[\d,]+)?(?:\s*(?:per|/)\s*(?:hour|year|annum))?`)
)

// SearchURL builds the posted-today search for one keyword.
func SearchURL(keyword, location string) string {
	k := strings.ReplaceAll(strings.TrimSpace(keyword), " ", "-")
	return baseURL + "/jobs?k=" + k + "&l=" + url.QueryEscape(location) + "&date=1"
}

// ParseListings extracts every card with a title from a results page.
func ParseListings(html, fallbackLocation string) ([]scraper.RawPosting, error) {
	doc, err := scraper.Document(html)
	if err != nil {
		return nil, err
	}

	var out []scraper.RawPosting
	doc.Find(cardSelector).Each(func(_ int, sel *goquery.Selection) {
		title := scraper.FirstText(sel, titleSelectors...)
		if title == "" {
			return
		}
		loc := scraper.FirstText(sel, locationSelectors...)
		if loc == "" {
			loc = fallbackLocation
		}
		out = append(out, scraper.RawPosting{
			Title:       title,
			Company:     scraper.FirstText(sel, companySelectors...),
			Location:    loc,
			Salary:      salaryPattern.FindString(sel.Text()),
			Description: snippet(sel),
			URL:         scraper.FirstAttr(sel, "href", linkSelectors...),
			PostedText:  postedText(sel),
			Source:      Name,
		})
	})
	return out, nil
}

// postedText is the first short span that reads like a relative date.
func postedText(sel *goquery.Selection) string {
	var found string
	sel.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		text := strings.TrimSpace(span.Text())
		if text == "" || len(text) >= maxDateLength {
			return true
		}
		lower := strings.ToLower(text)
		if strings.Contains(lower, "ago") || strings.Contains(lower, "day") || strings.Contains(lower, "hour") {
			found = text
			return false
		}
		return true
	})
	return found
}

func snippet(sel *goquery.Selection) string {
	text := sel.Find(snippetSelector).First().Text()
	before, _, _ := strings.Cut(text, "Show more")
	return strings.TrimSpace(before)
}

// ParseDetail reads the full description from a posting's own page.
func ParseDetail(html string) (string, error) {
	doc, err := scraper.Document(html)
	if err != nil {
		return "", err
	}
	desc := scraper.LongestText(doc.Selection, minDescriptionLength, descriptionSelectors...)
	if len(desc) < minDescriptionLength {
		if main := strings.TrimSpace(doc.Find(mainContentSelector).First().Text()); main != "" {
			desc = main
		}
	}
	return desc, nil
}

// NextPageHref finds the link to page current+1 in the pagination nav, falling
// back to the first arrow link. The sign-in modal trigger is stripped.
func NextPageHref(html string, current int) (string, bool) {
	doc, err := scraper.Document(html)
	if err != nil {
		return "", false
	}
	var nav *goquery.Selection
	for _, s := range paginationSelectors {
		if found := doc.Find(s).First(); found.Length() > 0 {
			nav = found
			break
		}
	}
	if nav == nil {
		return "", false
	}

	links := nav.Find("a")
	var href string
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		title, _ := a.Attr("title")
		if n, err := strconv.Atoi(strings.TrimSpace(title)); err == nil && n == current+1 {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if a.Find("svg").Length() > 0 {
				href, _ = a.Attr("href")
				return false
			}
			return true
		})
	}
	if href == "" {
		return "", false
	}
	return scraper.AbsoluteURL(baseURL, stripSignIn(href)), true
}

func stripSignIn(href string) string {
	href = strings.ReplaceAll(href, "&"+signInParam, "")
	href = strings.ReplaceAll(href, signInParam+"&", "")
	href = strings.ReplaceAll(href, "?"+signInParam, "")
	return href
}
