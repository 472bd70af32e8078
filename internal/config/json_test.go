package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"db": map[string]any{"dsn": "books.db"}},
		"remote": map[string]any{
			"base_url":        "https://db.example.com",
			"api_key":         "key",
			"request_timeout": "20s",
		},
		"sync": map[string]any{
			"interval":           "45s",
			"full_refresh_after": "720h",
		},
		"net": map[string]any{
			"probe_address":  "db.example.com:443",
			"probe_interval": "30s",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "books.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://db.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "key", cfg.Remote.APIKey)
	assert.Equal(t, 20*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 45*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 720*time.Hour, cfg.Sync.FullRefreshAfter)
	assert.Equal(t, "db.example.com:443", cfg.Net.ProbeAddress)
	assert.Equal(t, 30*time.Second, cfg.Net.ProbeInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempJSONConfig(t, "raw string, not an object")

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
		isErr bool
	}{
		{name: "string form", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "numeric nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"soon"`, isErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.isErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
