// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Remote{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}

	return NewClient(cfg, func() string { return "test-token" }, logger.Nop())
}

func TestUpsertAuthorsSendsMergeRequest(t *testing.T) {
	var got []models.AuthorRemote

	r := chi.NewRouter()
	r.Post("/rest/v1/Autor", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "resolution=merge-duplicates", req.Header.Get("Prefer"))
		assert.Equal(t, "test-key", req.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	c := newTestClient(t, r)
	recs := []models.AuthorRemote{{ID: "a-1", UpdatedAt: time.Now().UTC(), Name: "Tucholsky", BirthYear: 1890}}

	require.NoError(t, c.UpsertAuthors(context.Background(), recs))
	require.Len(t, got, 1)
	assert.Equal(t, "a-1", got[0].ID)
	assert.Equal(t, "Tucholsky", got[0].Name)
}

func TestAuthorsSinceBuildsRangeQuery(t *testing.T) {
	since := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)

	r := chi.NewRouter()
	r.Get("/rest/v1/Autor", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "gte."+since.Format(time.RFC3339Nano), req.URL.Query().Get("updated_at"))
		assert.Equal(t, "updated_at.asc", req.URL.Query().Get("order"))

		_ = json.NewEncoder(w).Encode([]models.AuthorRemote{
			{ID: "a-1", UpdatedAt: since.Add(time.Minute), Name: "Morgenstern"},
		})
	})

	c := newTestClient(t, r)

	recs, err := c.AuthorsSince(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Morgenstern", recs[0].Name)
}

func TestBooksSinceDecodesNullableAuthor(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/rest/v1/Buch", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"b-1","updated_at":"2026-05-02T10:00:00Z","is_deleted":false,"titel":"Galgenlieder","seiten":90,"autor_id":"a-1"},
			{"id":"b-2","updated_at":"2026-05-02T11:00:00Z","is_deleted":true,"titel":"Anon","seiten":10,"autor_id":null}
		]`))
	})

	c := newTestClient(t, r)

	recs, err := c.BooksSince(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.NotNil(t, recs[0].AuthorID)
	assert.Equal(t, "a-1", *recs[0].AuthorID)
	assert.Nil(t, recs[1].AuthorID)
	assert.True(t, recs[1].IsDeleted)
}

func TestProbeUpdatedAtFound(t *testing.T) {
	at := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)

	r := chi.NewRouter()
	r.Get("/rest/v1/Buch", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "eq.b-1", req.URL.Query().Get("id"))
		assert.Equal(t, "updated_at", req.URL.Query().Get("select"))

		_, _ = w.Write([]byte(`[{"updated_at":"2026-05-02T10:00:00Z"}]`))
	})

	c := newTestClient(t, r)

	got, err := c.ProbeUpdatedAt(context.Background(), models.TableBuch, "b-1")
	require.NoError(t, err)
	assert.True(t, got.Equal(at))
}

func TestProbeUpdatedAtNotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/rest/v1/Autor", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, r)

	_, err := c.ProbeUpdatedAt(context.Background(), models.TableAutor, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	r := chi.NewRouter()
	r.Post("/rest/v1/Autor", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := newTestClient(t, r)

	err := c.UpsertAuthors(context.Background(), []models.AuthorRemote{{ID: "a-1"}})
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, int32(1), calls.Load())
}

func TestServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32

	r := chi.NewRouter()
	r.Get("/rest/v1/Autor", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	c := newTestClient(t, r)

	_, err := c.AuthorsSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSelectUndecodableBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/rest/v1/Buch", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	})

	c := newTestClient(t, r)

	_, err := c.BooksSince(context.Background(), time.Time{})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDeriveRealtimeURL(t *testing.T) {
	assert.Equal(t, "wss://db.example.com/realtime/v1", deriveRealtimeURL("https://db.example.com/"))
	assert.Equal(t, "ws://localhost:4000/realtime/v1", deriveRealtimeURL("http://localhost:4000"))
}
