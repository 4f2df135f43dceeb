package dedup

import (
	"time"

	"jobscraper/internal/models"
)

// DefaultRepostThreshold is the minimum gap between two postings with the same
// key for the later one to count as a repost.
const DefaultRepostThreshold = 24 * time.Hour

type historyEntry struct {
	posted time.Time
	ok     bool
}

// Resolver decides which freshly collected postings are admitted against
// previously stored ones.
type Resolver struct {
	threshold time.Duration
	lookup    map[string]historyEntry
}

// NewResolver indexes history by dedup key. When history holds several
// postings with one key the last one wins, which is the most recent repost
// under append-only storage.
func NewResolver(history []models.JobPosting, threshold time.Duration) *Resolver {
	lookup := make(map[string]historyEntry, len(history))
	for _, h := range history {
		posted, err := models.ParseTimestamp(h.PostedDate)
		lookup[Key(h.Title, h.Company)] = historyEntry{posted: posted, ok: err == nil}
	}
	return &Resolver{threshold: threshold, lookup: lookup}
}

// Admit reports whether p should be stored.
//
// Unknown keys are admitted. Known keys are admitted only when p was posted at
// least the threshold after the stored posting. If either date is unreadable p
// is rejected.
func (r *Resolver) Admit(p models.JobPosting) bool {
	prev, exists := r.lookup[Key(p.Title, p.Company)]
	if !exists {
		return true
	}
	if !prev.ok {
		return false
	}
	posted, err := models.ParseTimestamp(p.PostedDate)
	if err != nil {
		return false
	}
	return posted.Sub(prev.posted) >= r.threshold
}

// ResolveAgainstHistory returns the subset of postings admitted against
// history, in their original order, and the number rejected.
func ResolveAgainstHistory(postings, history []models.JobPosting, threshold time.Duration) ([]models.JobPosting, int) {
	r := NewResolver(history, threshold)
	admitted := make([]models.JobPosting, 0, len(postings))
	for _, p := range postings {
		if r.Admit(p) {
			admitted = append(admitted, p)
		}
	}
	return admitted, len(postings) - len(admitted)
}
