package models

import (
	"encoding/json"
)

const (
	DefaultSalary  = "Not specified"
	DefaultJobType = "Full-time"
)

// DateConfidence records whether posted_date came from a recognized relative
// timestamp or from the "now" fallback.
type DateConfidence string

const (
	DateParsed   DateConfidence = "parsed"
	DateFallback DateConfidence = "fallback"
)

// JobPosting is one normalized job-listing record. It is the element type of
// the persisted store and of every in-memory collection in the pipeline.
type JobPosting struct {
	JobID          string         `json:"job_id"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	JobType        string         `json:"job_type"`
	Description    string         `json:"description"`
	URL            string         `json:"url"`
	PostedDate     string         `json:"posted_date"`
	Salary         string         `json:"salary"`
	Source         string         `json:"source"`
	FetchedAt      string         `json:"fetched_at"`
	DateConfidence DateConfidence `json:"date_confidence,omitempty"`
}

// UnmarshalJSON fills the documented defaults for fields missing from older
// store files so downstream code never has to.
func (j *JobPosting) UnmarshalJSON(data []byte) error {
	type alias JobPosting
	tmp := alias{
		Salary:  DefaultSalary,
		JobType: DefaultJobType,
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.Salary == "" {
		tmp.Salary = DefaultSalary
	}
	if tmp.JobType == "" {
		tmp.JobType = DefaultJobType
	}
	*j = JobPosting(tmp)
	return nil
}

// PersistedStore is the on-disk document owned by the store package.
type PersistedStore struct {
	ScrapedAt    string       `json:"scraped_at"`
	TotalJobs    int          `json:"total_jobs"`
	NewJobsAdded int          `json:"new_jobs_added"`
	Jobs         []JobPosting `json:"jobs"`
}
