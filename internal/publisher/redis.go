// Package publisher streams admitted postings to Redis for downstream
// consumers.
package publisher

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"jobscraper/internal/errors"
	"jobscraper/internal/models"
)

const (
	DefaultStream    = "jobs:admitted"
	defaultMaxLength = 10000
)

// RedisPublisher appends one stream entry per posting.
type RedisPublisher struct {
	client    *redis.Client
	stream    string
	maxLength int64
}

// NewRedisPublisher parses redisURL and verifies connectivity.
func NewRedisPublisher(ctx context.Context, redisURL, stream string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "redis.ParseURL")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return newRedisPublisher(client, stream), nil
}

func newRedisPublisher(client *redis.Client, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{client: client, stream: stream, maxLength: defaultMaxLength}
}

// entryValues is the field set of one stream entry.
func entryValues(p models.JobPosting) (map[string]any, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"job_id":  p.JobID,
		"source":  p.Source,
		"posting": string(payload),
	}, nil
}

func (p *RedisPublisher) Name() string { return "redis" }

// Publish appends every posting in a single pipeline, trimming the stream to
// roughly maxLength entries.
func (p *RedisPublisher) Publish(ctx context.Context, postings []models.JobPosting) error {
	if len(postings) == 0 {
		return nil
	}
	pipe := p.client.Pipeline()
	for _, posting := range postings {
		values, err := entryValues(posting)
		if err != nil {
			return errors.Wrapf(err, "encode %s", posting.JobID)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			MaxLen: p.maxLength,
			Approx: true,
			Values: values,
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
