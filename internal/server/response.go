package server

import (
	"jobscraper/internal/models"
)

// jobView is a posting as returned to API callers, with source exposed as
// source_api. skills_required is always present and empty; workflow callers
// expect the key.
type jobView struct {
	JobID          string                `json:"job_id"`
	Title          string                `json:"title"`
	Company        string                `json:"company"`
	Location       string                `json:"location"`
	JobType        string                `json:"job_type"`
	Description    string                `json:"description"`
	URL            string                `json:"url"`
	PostedDate     string                `json:"posted_date"`
	Salary         string                `json:"salary"`
	SourceAPI      string                `json:"source_api"`
	FetchedAt      string                `json:"fetched_at"`
	SkillsRequired string                `json:"skills_required"`
	DateConfidence models.DateConfidence `json:"date_confidence,omitempty"`
}

func newJobView(p models.JobPosting) jobView {
	salary := p.Salary
	if salary == "" {
		salary = models.DefaultSalary
	}
	jobType := p.JobType
	if jobType == "" {
		jobType = models.DefaultJobType
	}
	return jobView{
		JobID:          p.JobID,
		Title:          p.Title,
		Company:        p.Company,
		Location:       p.Location,
		JobType:        jobType,
		Description:    p.Description,
		URL:            p.URL,
		PostedDate:     p.PostedDate,
		Salary:         salary,
		SourceAPI:      p.Source,
		FetchedAt:      p.FetchedAt,
		DateConfidence: p.DateConfidence,
	}
}

type scrapeResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	TotalJobs int       `json:"total_jobs"`
	ScrapedAt string    `json:"scraped_at,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
	Jobs      []jobView `json:"jobs"`
}

func successResponse(runID, scrapedAt string, postings []models.JobPosting) scrapeResponse {
	jobs := make([]jobView, 0, len(postings))
	for _, p := range postings {
		jobs = append(jobs, newJobView(p))
	}
	return scrapeResponse{
		Success:   true,
		TotalJobs: len(jobs),
		ScrapedAt: scrapedAt,
		RunID:     runID,
		Jobs:      jobs,
	}
}

func failureResponse(msg string) scrapeResponse {
	return scrapeResponse{Success: false, Error: msg, TotalJobs: 0, Jobs: []jobView{}}
}
