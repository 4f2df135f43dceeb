package dedup

import (
	"testing"

	"jobscraper/internal/models"

	"github.com/stretchr/testify/assert"
)

func job(title, company, posted, source string) models.JobPosting {
	return models.JobPosting{Title: title, Company: company, PostedDate: posted, Source: source}
}

func TestDedupe_KeepsLatestPerKey(t *testing.T) {
	in := []models.JobPosting{
		job("Engineer", "Acme", "2025-01-01T00:00:00Z", "SimplyHired"),
		job("Designer", "Acme", "2025-01-01T05:00:00Z", "SimplyHired"),
		job("engineer!", "ACME", "2025-01-01T10:00:00Z", "Talent.com"),
		job("Engineer", "Acme", "2025-01-01T03:00:00Z", "Glassdoor"),
	}

	out, removed := Dedupe(in)

	assert.Equal(t, 2, removed)
	if assert.Len(t, out, 2) {
		assert.Equal(t, "Talent.com", out[0].Source, "latest variant replaces first in place")
		assert.Equal(t, "Designer", out[1].Title)
	}
}

func TestDedupe_UnparseableKeepsFirstSeen(t *testing.T) {
	tests := []struct {
		name string
		in   []models.JobPosting
	}{
		{"candidate unreadable", []models.JobPosting{
			job("Engineer", "Acme", "2025-01-01T00:00:00Z", "first"),
			job("Engineer", "Acme", "garbage", "second"),
		}},
		{"current unreadable", []models.JobPosting{
			job("Engineer", "Acme", "", "first"),
			job("Engineer", "Acme", "2025-01-05T00:00:00Z", "second"),
		}},
		{"equal dates", []models.JobPosting{
			job("Engineer", "Acme", "2025-01-01T00:00:00Z", "first"),
			job("Engineer", "Acme", "2025-01-01T00:00:00Z", "second"),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, removed := Dedupe(tt.in)
			assert.Equal(t, 1, removed)
			if assert.Len(t, out, 1) {
				assert.Equal(t, "first", out[0].Source)
			}
		})
	}
}

func TestDedupe_SingleSurvivorHasMaxDate(t *testing.T) {
	dates := []string{
		"2025-01-03T00:00:00Z", "2025-01-01T00:00:00Z", "2025-01-07T00:00:00Z",
		"2025-01-02T00:00:00Z", "2025-01-05T00:00:00Z",
	}
	var in []models.JobPosting
	for _, d := range dates {
		in = append(in, job("Engineer", "Acme", d, d))
	}

	out, removed := Dedupe(in)

	assert.Equal(t, len(dates)-1, removed)
	if assert.Len(t, out, 1) {
		assert.Equal(t, "2025-01-07T00:00:00Z", out[0].PostedDate)
	}
}

func TestDedupe_DoesNotMutateInput(t *testing.T) {
	in := []models.JobPosting{
		job("Engineer", "Acme", "2025-01-01T00:00:00Z", "a"),
		job("Engineer", "Acme", "2025-01-02T00:00:00Z", "b"),
	}
	_, _ = Dedupe(in)
	assert.Equal(t, "a", in[0].Source)
	assert.Equal(t, "b", in[1].Source)
}

func TestDedupe_Empty(t *testing.T) {
	out, removed := Dedupe(nil)
	assert.Empty(t, out)
	assert.Zero(t, removed)
}
