package filter

import (
	"time"

	"jobscraper/internal/models"
)

// DefaultWindow is the recency horizon used when none is configured.
const DefaultWindow = 24 * time.Hour

// FilterRecent keeps postings whose posted_date is at or after now-window.
// Postings with an unreadable posted_date are kept. The second return value
// is the number of postings dropped.
func FilterRecent(postings []models.JobPosting, now time.Time, window time.Duration) ([]models.JobPosting, int) {
	cutoff := now.Add(-window)
	kept := make([]models.JobPosting, 0, len(postings))
	for _, p := range postings {
		posted, err := models.ParseTimestamp(p.PostedDate)
		if err != nil || !posted.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept, len(postings) - len(kept)
}
