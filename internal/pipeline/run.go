package pipeline

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"jobscraper/internal/errors"
)

// Status is the lifecycle state of a scrape run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Request is one scrape request as accepted at the service boundary.
type Request struct {
	Platform string   `json:"platform,omitempty"`
	Keywords []string `json:"keywords"`
	Pages    int      `json:"pages"`
	Location string   `json:"location"`
}

// Limits caps what a single request may ask for.
type Limits struct {
	MaxPages    int
	MaxKeywords int
}

// Sanitize trims keywords, rejects requests with no keyword or a non-positive
// page count and clamps both to limits.
func (r Request) Sanitize(limits Limits) (Request, error) {
	out := Request{
		Platform: strings.TrimSpace(r.Platform),
		Location: strings.TrimSpace(r.Location),
		Pages:    r.Pages,
	}
	for _, kw := range r.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out.Keywords = append(out.Keywords, kw)
		}
	}
	if len(out.Keywords) == 0 {
		return Request{}, errors.Validation("keywords must be a non-empty list of strings")
	}
	if out.Pages < 1 {
		return Request{}, errors.Validation("pages must be a positive integer")
	}
	if limits.MaxKeywords > 0 && len(out.Keywords) > limits.MaxKeywords {
		out.Keywords = out.Keywords[:limits.MaxKeywords]
	}
	if limits.MaxPages > 0 && out.Pages > limits.MaxPages {
		out.Pages = limits.MaxPages
	}
	return out, nil
}

// RunContext travels through one pipeline invocation and comes back with its
// outcome. Nothing in it is shared with other runs.
type RunContext struct {
	ID         string
	Request    Request
	StartedAt  time.Time
	FinishedAt time.Time
	Status     Status
	Result     *IngestResult
	Err        error

	collected atomic.Int64
}

// NewRun starts a run context for req.
func NewRun(req Request, now time.Time) *RunContext {
	return &RunContext{
		ID:        uuid.NewString(),
		Request:   req,
		StartedAt: now,
		Status:    StatusRunning,
	}
}

// Collected is the number of raw postings gathered so far.
func (rc *RunContext) Collected() int { return int(rc.collected.Load()) }

func (rc *RunContext) setCollected(n int) { rc.collected.Store(int64(n)) }

func (rc *RunContext) finish(now time.Time, err error) {
	rc.FinishedAt = now
	rc.Err = err
	if err != nil {
		rc.Status = StatusError
		return
	}
	rc.Status = StatusCompleted
}
