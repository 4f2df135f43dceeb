package models

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339 utc", "2025-01-01T12:00:00Z"},
		{"rfc3339 offset", "2025-01-01T14:00:00+02:00"},
		{"naive", "2025-01-01T12:00:00"},
		{"naive with micros", "2025-01-01T12:00:00.000000"},
		{"space separated", "2025-01-01 12:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	for _, bad := range []string{"", "yesterday", "2025-13-45T00:00:00"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTimestamp_ErrorHasStack(t *testing.T) {
	_, err := ParseTimestamp("yesterday-ish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized timestamp "yesterday-ish"`)
	assert.Contains(t, fmt.Sprintf("%+v", err), "models.ParseTimestamp")
}

func TestFormatTimestamp_RoundTrip(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	s := FormatTimestamp(at)
	assert.Equal(t, "2025-03-04T04:06:07Z", s)

	back, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, at.Equal(back))
}

func TestJobPosting_UnmarshalDefaults(t *testing.T) {
	var j JobPosting
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Engineer","company":"Acme","salary":""}`), &j))

	assert.Equal(t, "Engineer", j.Title)
	assert.Equal(t, DefaultSalary, j.Salary)
	assert.Equal(t, DefaultJobType, j.JobType)
}
