package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// feedServer upgrades incoming connections and sends the given frames.
func feedServer(t *testing.T, frames ...string) *Feed {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		for _, frame := range frames {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		}
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	return NewFeed(url, func() string { return "test-token" }, logger.Nop())
}

func collect(t *testing.T, events <-chan models.ChangeEvent) []models.ChangeEvent {
	t.Helper()

	var got []models.ChangeEvent
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, open := <-events:
			if !open {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("feed did not close in time")
		}
	}
}

func TestFeedDeliversDecodedEvents(t *testing.T) {
	f := feedServer(t,
		`{"table":"Autor","type":"INSERT","record":{"id":"a-1","name":"Ringelnatz"}}`,
		`{"table":"Buch","type":"UPDATE","record":{"id":"b-1","titel":"Kuttel Daddeldu"}}`,
	)
	t.Cleanup(func() { _ = f.Close() })

	events, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 2)
	assert.Equal(t, models.TableAutor, got[0].Table)
	assert.Equal(t, models.OpInsert, got[0].Op)
	assert.Equal(t, models.TableBuch, got[1].Table)
}

func TestFeedSkipsUndecodableFrames(t *testing.T) {
	f := feedServer(t,
		`not json at all`,
		`{"table":"Autor","type":"UPDATE","record":{"id":"a-1"}}`,
	)
	t.Cleanup(func() { _ = f.Close() })

	events, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 1)
	assert.Equal(t, models.TableAutor, got[0].Table)
}

func TestFeedResubscribeReplacesConnection(t *testing.T) {
	f := feedServer(t, `{"table":"Autor","type":"INSERT","record":{"id":"a-1"}}`)
	t.Cleanup(func() { _ = f.Close() })

	first, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	second, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	// the first channel closes once its connection is torn down
	collect(t, first)
	collect(t, second)
}

// A stalled consumer must not wedge the read loop: extra frames are dropped
// once the buffer is full, and the channel still closes with the connection.
func TestFeedStalledConsumerDoesNotBlockReadLoop(t *testing.T) {
	frames := make([]string, 0, feedBuffer+5)
	for i := 0; i < feedBuffer+5; i++ {
		frames = append(frames, `{"table":"Autor","type":"UPDATE","record":{"id":"a-1"}}`)
	}
	f := feedServer(t, frames...)
	t.Cleanup(func() { _ = f.Close() })

	events, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	// read nothing until the server has sent everything and closed
	time.Sleep(200 * time.Millisecond)

	got := collect(t, events)
	assert.LessOrEqual(t, len(got), feedBuffer)
	assert.NotEmpty(t, got)
}

func TestFeedCloseIsIdempotent(t *testing.T) {
	f := feedServer(t)

	_, err := f.Subscribe(context.Background())
	require.NoError(t, err)

	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}

func TestFeedDialFailure(t *testing.T) {
	f := NewFeed("ws://127.0.0.1:1/realtime/v1", nil, logger.Nop())

	_, err := f.Subscribe(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}
