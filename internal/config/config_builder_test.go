package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple sources
// are merged into a single result, earlier sources winning.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&Config{Storage: Storage{DB: DB{DSN: "booksync.db"}}},
		&Config{Remote: Remote{BaseURL: "https://db.example.com"}},
		&Config{Remote: Remote{BaseURL: "https://ignored.example.com", APIKey: "key"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "booksync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://db.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "key", cfg.Remote.APIKey)
}

// TestBuild_AppliesDefaults verifies that policy fields left unset by every
// source get their documented defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{
		Storage: Storage{DB: DB{DSN: "booksync.db"}},
		Remote:  Remote{BaseURL: "https://db.example.com"},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, DefaultFullRefreshAfter, cfg.Sync.FullRefreshAfter)
	assert.Equal(t, DefaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, DefaultProbeInterval, cfg.Net.ProbeInterval)
}

// TestBuild_KeepsExplicitValues verifies that defaults do not override values
// a source provided.
func TestBuild_KeepsExplicitValues(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &Config{
		Storage: Storage{DB: DB{DSN: "booksync.db"}},
		Remote:  Remote{BaseURL: "https://db.example.com"},
		Sync:    Sync{Interval: 30 * time.Second, FullRefreshAfter: 14 * 24 * time.Hour},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 14*24*time.Hour, cfg.Sync.FullRefreshAfter)
}

func TestValidate_MissingLocalDSN(t *testing.T) {
	cfg := &Config{Remote: Remote{BaseURL: "https://db.example.com"}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestValidate_MissingRemoteBackend(t *testing.T) {
	cfg := &Config{Storage: Storage{DB: DB{DSN: "booksync.db"}}}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
}

func TestValidate_PostgresBackendIsEnough(t *testing.T) {
	cfg := &Config{
		Storage: Storage{DB: DB{DSN: "booksync.db"}},
		Remote:  Remote{PostgresDSN: "postgres://localhost:5432/books"},
	}
	assert.NoError(t, cfg.validate())
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := &Config{
		Storage: Storage{DB: DB{DSN: "booksync.db"}},
		Remote:  Remote{BaseURL: "https://db.example.com"},
		Sync:    Sync{Interval: -time.Second},
	}
	assert.ErrorIs(t, cfg.validate(), ErrInvalidSyncConfigs)
}
