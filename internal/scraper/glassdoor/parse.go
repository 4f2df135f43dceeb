package glassdoor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscraper/internal/scraper"
)

const (
	Name    = "Glassdoor"
	baseURL = "https://www.glassdoor.com"
)

const cardSelector = `li[data-test="jobListing"]`

var (
	titleSelectors    = []string{`a[data-test="job-title"]`, `a.JobCard_jobTitle__GLyJ1`}
	companySelectors  = []string{`span[data-test="employer-name"]`, `div.EmployerProfile_profileContainer__28h9t span`}
	locationSelectors = []string{`div[data-test="emp-location"]`, `div.JobCard_location__Ds1fM`}
	salarySelectors   = []string{`div[data-test="detailSalary"]`, `div.JobCard_salaryEstimate__OpbTW`}
	snippetSelectors  = []string{`div[data-test="descSnippet"]`, `div.JobCard_jobDescriptionSnippet__l1tnl`}

	showMoreSelectors = []string{`button:has-text("Show more jobs")`, `button.button_Button__o_a9q`}
)

// SearchURL builds the posted-today search for one keyword.
func SearchURL(keyword, location string) string {
	kw := strings.ReplaceAll(strings.TrimSpace(keyword), " ", "-")
	loc := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(location), " ", "-"))
	return baseURL + "/Job/" + loc + "-" + kw + "-jobs-SRCH_IL.0,13_IN1_KO14,31.htm?fromAge=1"
}

// Listing is a parsed card keyed by Glassdoor's own job id, which stays stable
// while "Show more jobs" keeps appending to the same list.
type Listing struct {
	JobID string
	Raw   scraper.RawPosting
}

// ParseListings extracts every card with a title. Glassdoor cards carry no
// posting date, so PostedText stays empty.
func ParseListings(html, fallbackLocation string) ([]Listing, error) {
	doc, err := scraper.Document(html)
	if err != nil {
		return nil, err
	}

	var out []Listing
	doc.Find(cardSelector).Each(func(_ int, sel *goquery.Selection) {
		title := scraper.FirstText(sel, titleSelectors...)
		if title == "" {
			return
		}
		jobID, _ := sel.Attr("data-jobid")
		loc := scraper.FirstText(sel, locationSelectors...)
		if loc == "" {
			loc = fallbackLocation
		}
		out = append(out, Listing{
			JobID: strings.TrimSpace(jobID),
			Raw: scraper.RawPosting{
				Title:       title,
				Company:     scraper.FirstText(sel, companySelectors...),
				Location:    loc,
				Salary:      scraper.FirstText(sel, salarySelectors...),
				Description: scraper.FirstText(sel, snippetSelectors...),
				URL:         scraper.FirstAttr(sel, "href", titleSelectors...),
				Source:      Name,
			},
		})
	})
	return out, nil
}
