package scraper

import (
	"testing"
	"time"

	"jobscraper/internal/dedup"
	"jobscraper/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "  Senior\n\n  Engineer\t ", "Senior Engineer"},
		{"keeps punctuation and currency", "$120,000 - €90.000 (per year); £5 ¥3: ok", "$120,000 - €90.000 (per year); £5 ¥3: ok"},
		{"strips symbols", "Engineer ★ @Acme! #1", "Engineer Acme 1"},
		{"keeps unicode letters", "Développeur Büro", "Développeur Büro"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://www.simplyhired.com"
	assert.Equal(t, "https://www.simplyhired.com/job/abc?x=1", AbsoluteURL(base, "/job/abc?x=1"))
	assert.Equal(t, "https://other.example/job", AbsoluteURL(base, "https://other.example/job"))
	assert.Equal(t, "", AbsoluteURL(base, "  "))
	assert.Equal(t, "https://www.talent.com/view?id=1", AbsoluteURL("https://www.talent.com", "view?id=1"))
}

func TestNormalize(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	raw := RawPosting{
		Title:      "  Sr. Engineer ✨ ",
		Company:    "Acme, Inc.",
		Location:   "Austin,  TX",
		URL:        "/job/123",
		PostedText: "3 hours ago",
		Source:     "SimplyHired",
	}

	p, ok := Normalize(raw, "https://www.simplyhired.com", now)

	assert.True(t, ok)
	assert.Equal(t, "Sr. Engineer", p.Title)
	assert.Equal(t, "Acme, Inc.", p.Company)
	assert.Equal(t, "Austin, TX", p.Location)
	assert.Equal(t, "https://www.simplyhired.com/job/123", p.URL)
	assert.Equal(t, "2025-01-02T09:00:00Z", p.PostedDate)
	assert.Equal(t, "2025-01-02T12:00:00Z", p.FetchedAt)
	assert.Equal(t, models.DefaultSalary, p.Salary)
	assert.Equal(t, models.DefaultJobType, p.JobType)
	assert.Equal(t, models.DateParsed, p.DateConfidence)
	assert.Equal(t, dedup.Fingerprint("Sr. Engineer", "Acme, Inc."), p.JobID)
	assert.Equal(t, "SimplyHired", p.Source)
}

func TestNormalize_FallbackDate(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	p, ok := Normalize(RawPosting{Title: "Engineer", Company: "Acme", PostedText: "recently"}, "", now)

	assert.True(t, ok)
	assert.Equal(t, models.FormatTimestamp(now), p.PostedDate)
	assert.Equal(t, models.DateFallback, p.DateConfidence)
}

func TestNormalize_RejectsIncomplete(t *testing.T) {
	now := time.Now()
	_, ok := Normalize(RawPosting{Title: "Engineer"}, "", now)
	assert.False(t, ok)
	_, ok = Normalize(RawPosting{Company: "Acme"}, "", now)
	assert.False(t, ok)
	_, ok = Normalize(RawPosting{Title: "★★★", Company: "Acme"}, "", now)
	assert.False(t, ok, "title that cleans to nothing is unusable")
}
