package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscraper/internal/models"
)

func TestEntryValues(t *testing.T) {
	p := models.JobPosting{JobID: "abc123", Title: "Go Engineer", Company: "Acme", Source: "SimplyHired"}
	values, err := entryValues(p)
	require.NoError(t, err)

	assert.Equal(t, "abc123", values["job_id"])
	assert.Equal(t, "SimplyHired", values["source"])

	var decoded models.JobPosting
	require.NoError(t, json.Unmarshal([]byte(values["posting"].(string)), &decoded))
	assert.Equal(t, "Go Engineer", decoded.Title)
	assert.Equal(t, models.DefaultSalary, decoded.Salary)
}

func TestRedisPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	stream := "test_jobs_" + time.Now().Format("150405.000")
	defer client.Del(ctx, stream)

	pub := newRedisPublisher(client, stream)
	require.NoError(t, pub.Publish(ctx, []models.JobPosting{{JobID: "a"}, {JobID: "b"}}))

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Values["job_id"])
	assert.Equal(t, "b", entries[1].Values["job_id"])
}
