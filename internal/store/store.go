// Package store owns the persisted job document. It is the only code that
// writes it: every write is a full replacement made under an exclusive lock
// that spans the whole load, merge and write cycle.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"jobscraper/internal/errors"
	"jobscraper/internal/logger"
	"jobscraper/internal/models"
)

const defaultLockRetry = 50 * time.Millisecond

// Store is a JSON file holding every admitted posting.
type Store struct {
	path      string
	fileLock  *flock.Flock
	sem       chan struct{}
	now       func() time.Time
	lockRetry time.Duration
	log       zerolog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the clock used for scraped_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a Store backed by path. The file does not need to exist.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:      path,
		fileLock:  flock.New(path + ".lock"),
		sem:       make(chan struct{}, 1),
		now:       time.Now,
		lockRetry: defaultLockRetry,
		log:       logger.For("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Update runs one locked read-modify-write cycle. resolve receives the stored
// postings and returns the postings to append. The combined document is
// written back as a single replacement and returned.
func (s *Store) Update(ctx context.Context, resolve func(history []models.JobPosting) []models.JobPosting) (*models.PersistedStore, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	history := s.load()
	admitted := resolve(history)

	all := make([]models.JobPosting, 0, len(history)+len(admitted))
	all = append(all, history...)
	all = append(all, admitted...)

	doc := &models.PersistedStore{
		ScrapedAt:    models.FormatTimestamp(s.now()),
		TotalJobs:    len(all),
		NewJobsAdded: len(admitted),
		Jobs:         all,
	}
	if err := s.write(doc); err != nil {
		return nil, errors.WithKind(errors.Wrapf(err, "persist %s", s.path), errors.KindStore)
	}
	s.log.Info().
		Int("total_jobs", doc.TotalJobs).
		Int("new_jobs_added", doc.NewJobsAdded).
		Msgf("💾 Saved %d jobs to %s", doc.TotalJobs, s.path)
	return doc, nil
}

// MergeAndPersist appends admitted to the stored history and writes the result.
func (s *Store) MergeAndPersist(ctx context.Context, admitted []models.JobPosting) (*models.PersistedStore, error) {
	return s.Update(ctx, func([]models.JobPosting) []models.JobPosting { return admitted })
}

// Snapshot reads the stored postings under the lock without writing.
func (s *Store) Snapshot(ctx context.Context) ([]models.JobPosting, error) {
	unlock, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.load(), nil
}

func (s *Store) acquire(ctx context.Context) (func(), error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.WithKind(errors.Wrap(ctx.Err(), "wait for store"), errors.KindStore)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			<-s.sem
			return nil, errors.WithKind(errors.Wrapf(err, "create store directory %s", dir), errors.KindStore)
		}
	}
	locked, err := s.fileLock.TryLockContext(ctx, s.lockRetry)
	if err != nil || !locked {
		<-s.sem
		if err == nil {
			err = errors.New("lock not acquired")
		}
		return nil, errors.WithKind(errors.Wrapf(err, "lock %s", s.fileLock.Path()), errors.KindStore)
	}

	return func() {
		if err := s.fileLock.Unlock(); err != nil {
			s.log.Warn().Err(err).Msg("⚠️ Failed to release store lock")
		}
		<-s.sem
	}, nil
}

// load reads the stored postings. A missing, empty or malformed file is
// treated as an empty history.
func (s *Store) load() []models.JobPosting {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn().Str("path", s.path).Msg("⚠️ No existing store, starting fresh")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("⚠️ Failed to read store, starting fresh")
		}
		return []models.JobPosting{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Warn().Str("path", s.path).Msg("⚠️ Store file is empty, starting fresh")
		return []models.JobPosting{}
	}

	var doc models.PersistedStore
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("⚠️ Store file is malformed, starting fresh")
		return []models.JobPosting{}
	}
	if doc.Jobs == nil {
		return []models.JobPosting{}
	}
	s.log.Info().Msgf("📋 Loaded %d previously stored jobs", len(doc.Jobs))
	return doc.Jobs
}

// write replaces the store file atomically: the document goes to a temp file
// in the same directory which is then renamed over the target.
func (s *Store) write(doc *models.PersistedStore) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "marshal store")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
