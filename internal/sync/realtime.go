// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"fmt"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// Listener drains the remote change feed and applies each event through the
// registry. An event arriving while a download pass is running is dropped,
// not queued; the next periodic pass picks the change up anyway.
type Listener struct {
	local    LocalStore
	remote   RemoteStore
	coord    *Coordinator
	registry *Registry
	log      *logger.Logger
}

func NewListener(local LocalStore, rs RemoteStore, coord *Coordinator, registry *Registry, log *logger.Logger) *Listener {
	return &Listener{local: local, remote: rs, coord: coord, registry: registry, log: log}
}

// Run subscribes to the change feed and processes events until ctx is
// cancelled or the feed closes. A closed feed returns nil so the caller can
// resubscribe.
func (l *Listener) Run(ctx context.Context) error {
	events, err := l.remote.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe change feed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, open := <-events:
			if !open {
				l.log.Debug().Msg("change feed closed")
				return nil
			}
			l.handle(ctx, ev)
		}
	}
}

func (l *Listener) handle(ctx context.Context, ev models.ChangeEvent) {
	release, ok := l.coord.BeginDownload()
	if !ok {
		l.log.Debug().
			Str("table", ev.Table).
			Str("op", string(ev.Op)).
			Msg("change event dropped, download pass in flight")
		return
	}
	defer release()

	if err := l.registry.Dispatch(ctx, l.local, ev); err != nil {
		l.log.Warn().Err(err).
			Str("table", ev.Table).
			Str("op", string(ev.Op)).
			Msg("change event could not be applied")
	}
}
