package scraper

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"jobscraper/internal/dedup"
	"jobscraper/internal/filter"
	"jobscraper/internal/models"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:()\-$€£¥]+`)
)

// CleanText collapses whitespace and strips every character outside word
// characters, basic punctuation and currency symbols.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	s = spaceRun.ReplaceAllString(s, " ")
	s = disallowed.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// AbsoluteURL resolves href against base. Absolute hrefs are returned as is
// and an unparseable href is returned trimmed.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return href
	}
	return b.ResolveReference(ref).String()
}

// Normalize turns a raw record into a JobPosting. It reports false for records
// without a title or company, which are not usable downstream.
func Normalize(raw RawPosting, base string, now time.Time) (models.JobPosting, bool) {
	title := CleanText(raw.Title)
	company := CleanText(raw.Company)
	if title == "" || company == "" {
		return models.JobPosting{}, false
	}

	salary := CleanText(raw.Salary)
	if salary == "" {
		salary = models.DefaultSalary
	}

	posted, parsed := filter.ParsePostedDate(raw.PostedText, now)
	confidence := models.DateParsed
	if !parsed {
		confidence = models.DateFallback
	}

	return models.JobPosting{
		JobID:          dedup.Fingerprint(title, company),
		Title:          title,
		Company:        company,
		Location:       CleanText(raw.Location),
		JobType:        models.DefaultJobType,
		Description:    CleanText(raw.Description),
		URL:            AbsoluteURL(base, raw.URL),
		PostedDate:     models.FormatTimestamp(posted),
		Salary:         salary,
		Source:         raw.Source,
		FetchedAt:      models.FormatTimestamp(now),
		DateConfidence: confidence,
	}, true
}
