// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

const feedBuffer = 32

// Feed maintains the single websocket connection carrying remote change
// events. Subscribe replaces any previous subscription; there is never more
// than one live connection per Feed.
type Feed struct {
	url    string
	token  TokenFunc
	dialer *websocket.Dialer
	log    *logger.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewFeed(url string, token TokenFunc, log *logger.Logger) *Feed {
	return &Feed{
		url:    url,
		token:  token,
		dialer: websocket.DefaultDialer,
		log:    log,
	}
}

// Subscribe dials the realtime endpoint and returns a channel of decoded
// change events. An existing subscription is torn down first. The returned
// channel is closed when the connection dies or Close is called.
func (f *Feed) Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn != nil {
		_ = f.conn.Close()
		f.conn = nil
	}

	header := http.Header{}
	if f.token != nil {
		if token := f.token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := f.dialer.DialContext(ctx, f.url, header)
	if err != nil {
		return nil, fmt.Errorf("dial realtime feed %s: %w: %w", f.url, ErrTransport, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	f.conn = conn
	events := make(chan models.ChangeEvent, feedBuffer)
	go f.readLoop(conn, events)

	f.log.Debug().Str("url", f.url).Msg("realtime feed subscribed")

	return events, nil
}

// Close tears down the current connection, if any. Idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.conn == nil {
		return nil
	}

	err := f.conn.Close()
	f.conn = nil

	return err
}

// readLoop drains frames from one connection until it dies. A frame that does
// not decode as a change event is logged and skipped, the feed stays up.
// A full buffer means the consumer is gone or stalled; the frame is dropped
// so the loop always returns to ReadMessage and notices a closed connection.
func (f *Feed) readLoop(conn *websocket.Conn, events chan<- models.ChangeEvent) {
	defer close(events)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			f.log.Debug().Err(err).Msg("realtime feed closed")
			return
		}

		var ev models.ChangeEvent
		if err = json.Unmarshal(data, &ev); err != nil {
			f.log.Warn().Err(err).Msg("undecodable realtime frame skipped")
			continue
		}

		select {
		case events <- ev:
		default:
			f.log.Warn().Str("table", ev.Table).Msg("realtime frame dropped, consumer not keeping up")
		}
	}
}
