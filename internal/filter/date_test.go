package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePostedDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      string
		want       time.Time
		wantParsed bool
	}{
		{"just posted", "Just posted", now, true},
		{"today", "Posted today", now, true},
		{"yesterday", "Yesterday", now.Add(-24 * time.Hour), true},
		{"1d token", "1d", now.Add(-24 * time.Hour), true},
		{"minutes", "45 minutes ago", now.Add(-45 * time.Minute), true},
		{"minutes short", "5m", now.Add(-5 * time.Minute), true},
		{"hours", "3 hours ago", now.Add(-3 * time.Hour), true},
		{"hours hr", "2hr", now.Add(-2 * time.Hour), true},
		{"days", "3 days ago", now.Add(-72 * time.Hour), true},
		{"days short", "2d", now.Add(-48 * time.Hour), true},
		{"days plus", "30+ days ago", now.Add(-30 * 24 * time.Hour), true},
		{"weeks", "2 weeks ago", now.Add(-14 * 24 * time.Hour), true},
		{"weeks short", "1w", now.Add(-7 * 24 * time.Hour), true},
		{"months", "2 months ago", now.Add(-60 * 24 * time.Hour), true},
		{"months short", "1mo", now.Add(-30 * 24 * time.Hour), true},
		{"label stripped", "Last updated: 1 day ago", now.Add(-24 * time.Hour), true},
		{"case insensitive", "5 DAYS AGO", now.Add(-5 * 24 * time.Hour), true},
		{"zero days", "0 days", now, true},
		{"zero hours", "0h", now, true},
		{"empty", "", now, false},
		{"whitespace", "   ", now, false},
		{"unrecognized", "Hiring urgently", now, false},
		{"too long", strings.Repeat("3 days ago ", 20), now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, parsed := ParsePostedDate(tt.input, now)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.wantParsed, parsed)
		})
	}
}

func TestParsePostedDate_LargeCountsStayInThePast(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"20000 weeks ago", now.AddDate(0, 0, -140000)},
		{"5000 months ago", now.AddDate(0, 0, -150000)},
		{"99999 months ago", now.AddDate(0, 0, -2999970)},
		{"100000 days ago", now.AddDate(0, 0, -100000)},
		{"100000 hours ago", now.Add(-100000 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, parsed := ParsePostedDate(tt.input, now)
			assert.True(t, parsed)
			assert.True(t, got.Before(now), "got %v, not before now", got)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}

	got, _ := ParsePostedDate("99999 months ago", now)
	assert.Less(t, got.Year(), -6000)
}

func TestParsePostedDate_HugeNumberFallsBack(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got, parsed := ParsePostedDate("99999999999999 days ago", now)
	assert.Equal(t, now, got)
	assert.False(t, parsed)

	got, parsed = ParsePostedDate("100001 months ago", now)
	assert.Equal(t, now, got)
	assert.False(t, parsed)
}
