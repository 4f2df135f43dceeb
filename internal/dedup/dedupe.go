package dedup

import (
	"jobscraper/internal/models"
)

// Dedupe collapses postings that share a dedup key, keeping the one with the
// latest posted_date. When either date in a comparison cannot be read the
// member seen first stays. Survivors keep the position of the first member of
// their group. The second return value is the number of postings removed.
func Dedupe(postings []models.JobPosting) ([]models.JobPosting, int) {
	index := make(map[string]int, len(postings))
	out := make([]models.JobPosting, 0, len(postings))

	for _, p := range postings {
		key := Key(p.Title, p.Company)
		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, p)
			continue
		}
		if newer(p, out[i]) {
			out[i] = p
		}
	}
	return out, len(postings) - len(out)
}

// newer reports whether candidate was posted strictly after current. Any
// parse failure reports false.
func newer(candidate, current models.JobPosting) bool {
	cur, err := models.ParseTimestamp(current.PostedDate)
	if err != nil {
		return false
	}
	cand, err := models.ParseTimestamp(candidate.PostedDate)
	if err != nil {
		return false
	}
	return cand.After(cur)
}
