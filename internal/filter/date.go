package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// maxDateTextLen is the longest text still considered a timestamp. Anything
// longer is some other element the selector chain picked up.
const maxDateTextLen = 100

// maxUnits caps the captured number. Day based units go through AddDate, so
// even 100000 months stays well inside the range of time.Time.
const maxUnits = 100000

const day = 24 * time.Hour

// relativeUnit maps a captured count to a past time. Exactly one of unit
// (sub-day) or days is set.
type relativeUnit struct {
	re   *regexp.Regexp
	unit time.Duration
	days int
}

func (ru relativeUnit) before(now time.Time, n int) time.Time {
	if ru.days > 0 {
		return now.AddDate(0, 0, -n*ru.days)
	}
	return now.Add(-time.Duration(n) * ru.unit)
}

var relativeUnits = []relativeUnit{
	// minutes first: "5m" must not be read as months
	{re: regexp.MustCompile(`(\d+)\+?\s*(?:minutes?|mins?|m)\b`), unit: time.Minute},
	{re: regexp.MustCompile(`(\d+)\+?\s*(?:hours?|hrs?|h)\b`), unit: time.Hour},
	{re: regexp.MustCompile(`(\d+)\+?\s*(?:days?|d)\b`), days: 1},
	{re: regexp.MustCompile(`(\d+)\+?\s*(?:weeks?|w)\b`), days: 7},
	// months are approximated as 30 days
	{re: regexp.MustCompile(`(\d+)\+?\s*(?:months?|mo)\b`), days: 30},
}

var zeroTokens = map[string]bool{
	"0d": true, "0h": true, "0hr": true, "0m": true, "0 days": true, "0 hours": true,
}

// ParsePostedDate converts relative posting text such as "3 days ago" or
// "Just posted" into an absolute time relative to now. It never fails: text it
// cannot read resolves to now and the second return value is false.
func ParsePostedDate(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return now, false
	}
	if strings.Contains(text, "last updated:") {
		text = strings.TrimSpace(strings.ReplaceAll(text, "last updated:", ""))
	}
	if len(text) > maxDateTextLen {
		return now, false
	}

	if strings.Contains(text, "just posted") || strings.Contains(text, "today") {
		return now, true
	}
	if strings.Contains(text, "yesterday") || text == "1d" {
		return now.Add(-day), true
	}

	for _, ru := range relativeUnits {
		m := ru.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxUnits {
			return now, false
		}
		return ru.before(now, n), true
	}

	if zeroTokens[text] {
		return now, true
	}
	return now, false
}
