// Package pipeline turns collected postings into admitted, persisted ones and
// wraps the whole scrape run for callers.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jobscraper/internal/dedup"
	"jobscraper/internal/filter"
	"jobscraper/internal/logger"
	"jobscraper/internal/models"
	"jobscraper/internal/store"
)

// IngestResult records what every stage of one ingest did.
type IngestResult struct {
	Collected   int
	Duplicates  int
	OutOfWindow int
	Rejected    int
	Admitted    []models.JobPosting
	Store       *models.PersistedStore
}

// Ingester runs dedupe, recency filtering, history resolution and persistence.
type Ingester struct {
	store           *store.Store
	sinks           []Sink
	window          time.Duration
	repostThreshold time.Duration
	now             func() time.Time
	log             zerolog.Logger
}

// IngesterOption customizes an Ingester.
type IngesterOption func(*Ingester)

func WithWindow(d time.Duration) IngesterOption {
	return func(i *Ingester) { i.window = d }
}

func WithRepostThreshold(d time.Duration) IngesterOption {
	return func(i *Ingester) { i.repostThreshold = d }
}

func WithClock(now func() time.Time) IngesterOption {
	return func(i *Ingester) { i.now = now }
}

func WithSinks(sinks ...Sink) IngesterOption {
	return func(i *Ingester) { i.sinks = append(i.sinks, sinks...) }
}

// NewIngester returns an Ingester persisting to st.
func NewIngester(st *store.Store, opts ...IngesterOption) *Ingester {
	i := &Ingester{
		store:           st,
		window:          filter.DefaultWindow,
		repostThreshold: dedup.DefaultRepostThreshold,
		now:             time.Now,
		log:             logger.For("pipeline"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest runs the collected postings through the pipeline. History resolution
// and the write happen under one store lock, so concurrent ingests never lose
// each other's postings.
func (i *Ingester) Ingest(ctx context.Context, postings []models.JobPosting) (*IngestResult, error) {
	res := &IngestResult{Collected: len(postings)}

	unique, removed := dedup.Dedupe(postings)
	res.Duplicates = removed
	i.log.Info().Int("removed", removed).Msgf("🔄 %d unique jobs after dedup", len(unique))

	recent, stale := filter.FilterRecent(unique, i.now(), i.window)
	res.OutOfWindow = stale
	i.log.Info().Int("removed", stale).Msgf("⏰ %d jobs inside the %s window", len(recent), i.window)

	doc, err := i.store.Update(ctx, func(history []models.JobPosting) []models.JobPosting {
		admitted, rejected := dedup.ResolveAgainstHistory(recent, history, i.repostThreshold)
		res.Rejected = rejected
		res.Admitted = admitted
		return admitted
	})
	if err != nil {
		return nil, err
	}
	res.Store = doc
	i.log.Info().
		Int("rejected", res.Rejected).
		Int("admitted", len(res.Admitted)).
		Int("total_jobs", doc.TotalJobs).
		Msgf("✨ %d new jobs admitted", len(res.Admitted))

	publish(ctx, i.log, i.sinks, res.Admitted)
	return res, nil
}
