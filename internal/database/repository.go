package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobscraper/internal/errors"
	"jobscraper/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_postings (
	job_id          TEXT NOT NULL,
	posted_date     TEXT NOT NULL,
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	location        TEXT NOT NULL DEFAULT '',
	job_type        TEXT NOT NULL DEFAULT 'Full-time',
	description     TEXT NOT NULL DEFAULT '',
	url             TEXT NOT NULL DEFAULT '',
	salary          TEXT NOT NULL DEFAULT 'Not specified',
	source          TEXT NOT NULL DEFAULT '',
	fetched_at      TEXT NOT NULL DEFAULT '',
	date_confidence TEXT NOT NULL DEFAULT '',
	archived_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (job_id, posted_date)
)`

const insertPosting = `
	INSERT INTO job_postings (job_id, posted_date, title, company, location, job_type, description, url, salary, source, fetched_at, date_confidence)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (job_id, posted_date) DO NOTHING`

// batcher is the part of *pgxpool.Pool the archive writes through.
type batcher interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Repository archives admitted postings in Postgres. The JSON store stays the
// source of truth; the archive only ever grows.
type Repository struct {
	pool *pgxpool.Pool
	db   batcher
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse database url")
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers (PgBouncer, Supabase) break prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "database unreachable")
	}

	return &Repository{pool: pool, db: pool}, nil
}

// Migrate creates the archive table if it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create job_postings")
	}
	return nil
}

func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

func postingArgs(p models.JobPosting) []any {
	return []any{
		p.JobID, p.PostedDate, p.Title, p.Company, p.Location, p.JobType,
		p.Description, p.URL, p.Salary, p.Source, p.FetchedAt, string(p.DateConfidence),
	}
}

// SavePostings inserts postings in one batch, skipping rows already archived.
// It returns how many rows were actually inserted.
func (r *Repository) SavePostings(ctx context.Context, postings []models.JobPosting) (int, error) {
	if len(postings) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, p := range postings {
		batch.Queue(insertPosting, postingArgs(p)...)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for _, p := range postings {
		tag, err := results.Exec()
		if err != nil {
			return inserted, errors.Wrapf(err, "failed to archive job %s", p.JobID)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// Name identifies the repository as a pipeline sink.
func (r *Repository) Name() string { return "postgres" }

// Publish archives the admitted postings.
func (r *Repository) Publish(ctx context.Context, postings []models.JobPosting) error {
	_, err := r.SavePostings(ctx, postings)
	return err
}
