package server

import (
	"sync"
	"time"

	"jobscraper/internal/errors"
	"jobscraper/internal/models"
	"jobscraper/internal/pipeline"
)

// StatusSnapshot is the public view of the status board.
type StatusSnapshot struct {
	Status        pipeline.Status `json:"status"`
	RunID         string          `json:"run_id,omitempty"`
	JobsCount     int             `json:"jobs_count"`
	StartedAt     string          `json:"started_at,omitempty"`
	FinishedAt    string          `json:"finished_at,omitempty"`
	LastHeartbeat string          `json:"last_heartbeat,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// StatusBoard is the one process-wide record of scrape progress. It only
// changes through Transition and Heartbeat.
type StatusBoard struct {
	mu            sync.Mutex
	status        pipeline.Status
	run           *pipeline.RunContext
	jobsCount     int
	lastHeartbeat time.Time
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{status: pipeline.StatusIdle}
}

func allowed(from, to pipeline.Status) bool {
	switch to {
	case pipeline.StatusRunning:
		return from != pipeline.StatusRunning
	case pipeline.StatusCompleted, pipeline.StatusError:
		return from == pipeline.StatusRunning
	default:
		return false
	}
}

// Transition moves the board to next for rc. Entering running while a run is
// in progress is a conflict; finishing requires rc to be the current run.
func (b *StatusBoard) Transition(next pipeline.Status, rc *pipeline.RunContext) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !allowed(b.status, next) {
		if next == pipeline.StatusRunning {
			return errors.WithKind(errors.Newf("a scrape is already running (run %s)", b.run.ID), errors.KindConflict)
		}
		return errors.Newf("invalid status transition %s -> %s", b.status, next)
	}
	if next != pipeline.StatusRunning && b.run != rc {
		return errors.Newf("run %s is not the current run", rc.ID)
	}

	b.status = next
	b.run = rc
	switch next {
	case pipeline.StatusRunning:
		b.jobsCount = 0
		b.lastHeartbeat = time.Time{}
	default:
		b.jobsCount = rc.Collected()
		if rc.Result != nil {
			b.jobsCount = len(rc.Result.Admitted)
		}
	}
	return nil
}

// Heartbeat stamps progress for rc if it is still the running run.
func (b *StatusBoard) Heartbeat(rc *pipeline.RunContext, at time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != pipeline.StatusRunning || b.run != rc {
		return false
	}
	b.lastHeartbeat = at
	b.jobsCount = rc.Collected()
	return true
}

// Status returns the current status only.
func (b *StatusBoard) Status() pipeline.Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *StatusBoard) Snapshot() StatusSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := StatusSnapshot{Status: b.status, JobsCount: b.jobsCount}
	if b.status == pipeline.StatusRunning && b.run != nil {
		snap.JobsCount = b.run.Collected()
	}
	if !b.lastHeartbeat.IsZero() {
		snap.LastHeartbeat = models.FormatTimestamp(b.lastHeartbeat)
	}
	if b.run == nil {
		return snap
	}
	snap.RunID = b.run.ID
	snap.StartedAt = models.FormatTimestamp(b.run.StartedAt)
	if b.status != pipeline.StatusRunning {
		snap.FinishedAt = models.FormatTimestamp(b.run.FinishedAt)
		if b.run.Err != nil {
			snap.Error = b.run.Err.Error()
		}
	}
	return snap
}
