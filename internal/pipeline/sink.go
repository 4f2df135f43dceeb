package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"jobscraper/internal/models"
)

// Sink receives the postings admitted by a run after they are persisted.
type Sink interface {
	Name() string
	Publish(ctx context.Context, postings []models.JobPosting) error
}

// publish hands admitted to every sink. Sink failures are logged only; the
// store is already the source of truth by the time sinks run.
func publish(ctx context.Context, log zerolog.Logger, sinks []Sink, admitted []models.JobPosting) {
	if len(admitted) == 0 {
		return
	}
	for _, s := range sinks {
		if err := s.Publish(ctx, admitted); err != nil {
			log.Warn().Err(err).Str("sink", s.Name()).Msg("⚠️ Sink publish failed")
			continue
		}
		log.Debug().Str("sink", s.Name()).Int("postings", len(admitted)).Msg("Published")
	}
}
