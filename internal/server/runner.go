package server

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jobscraper/internal/logger"
	"jobscraper/internal/pipeline"
	"jobscraper/internal/scraper"
)

// DefaultHeartbeat is how often a running scrape logs that it is alive.
const DefaultHeartbeat = 5 * time.Minute

// Scrapes is the part of pipeline.Service the runner drives.
type Scrapes interface {
	Prepare(req pipeline.Request) (*pipeline.RunContext, []scraper.Scraper, error)
	Execute(ctx context.Context, rc *pipeline.RunContext, scrapers []scraper.Scraper) (*pipeline.RunContext, error)
}

// Runner executes one scrape at a time and keeps the status board current.
// The HTTP handler and the scheduler both go through it.
type Runner struct {
	svc       Scrapes
	board     *StatusBoard
	heartbeat time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

func NewRunner(svc Scrapes, board *StatusBoard, heartbeat time.Duration) *Runner {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Runner{
		svc:       svc,
		board:     board,
		heartbeat: heartbeat,
		now:       time.Now,
		log:       logger.For("runner"),
	}
}

// Run validates req, claims the board and runs the scrape to completion.
// Validation errors and conflicts leave the board untouched.
func (r *Runner) Run(ctx context.Context, req pipeline.Request) (*pipeline.RunContext, error) {
	rc, scrapers, err := r.svc.Prepare(req)
	if err != nil {
		return nil, err
	}
	if err := r.board.Transition(pipeline.StatusRunning, rc); err != nil {
		return nil, err
	}

	stop := r.startHeartbeat(rc)
	rc, runErr := r.svc.Execute(ctx, rc, scrapers)
	stop()

	final := pipeline.StatusCompleted
	if runErr != nil {
		final = pipeline.StatusError
	}
	if err := r.board.Transition(final, rc); err != nil {
		r.log.Error().Err(err).Str("run_id", rc.ID).Msg("status board rejected run outcome")
	}
	return rc, runErr
}

func (r *Runner) startHeartbeat(rc *pipeline.RunContext) func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(r.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if r.board.Heartbeat(rc, r.now()) {
					r.log.Info().Str("run_id", rc.ID).Msgf("🔄 Still scraping... processed %d jobs", rc.Collected())
				}
			}
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}
