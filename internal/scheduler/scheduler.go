// Package scheduler wires up the cron job that periodically triggers a scrape
// run with the configured default request.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"jobscraper/internal/errors"
	"jobscraper/internal/logger"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron *cron.Cron
	spec string
	job  Job
	log  zerolog.Logger
}

// New creates a Scheduler firing job on spec, a standard five-field cron
// expression or a descriptor such as "@every 6h".
func New(spec string, job Job) *Scheduler {
	log := logger.For("scheduler")
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cronLogger{log}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{log}))),
		spec: spec,
		job:  job,
		log:  log,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.Trigger(ctx) }); err != nil {
		return errors.Wrapf(err, "cron.AddFunc(%q)", s.spec)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("⏰ Cron started")
	return nil
}

// Trigger runs the job once, logging its outcome.
func (s *Scheduler) Trigger(ctx context.Context) {
	s.log.Info().Msg("Scheduled scrape started")
	if err := s.job(ctx); err != nil {
		s.log.Error().Err(err).Msg("Scheduled scrape failed")
		return
	}
	s.log.Info().Msg("Scheduled scrape complete")
}

// Stop stops the scheduler and waits for a running job to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Cron stopped")
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct{ log zerolog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
