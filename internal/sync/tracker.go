// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/store"
	"github.com/crohrer/booksync/models"
)

// Tracker is the commit hook that stamps locally changed records dirty and
// nudges the uploader. It stays inert until the engine binds it, and it
// suppresses itself while the engine's own writes are committing, so applied
// remote changes do not bounce straight back up.
type Tracker struct {
	coord    *Coordinator
	requests chan<- struct{}
	bound    atomic.Bool
	now      func() time.Time
	log      *logger.Logger
}

func NewTracker(coord *Coordinator, requests chan<- struct{}, log *logger.Logger) *Tracker {
	return &Tracker{coord: coord, requests: requests, now: time.Now, log: log}
}

// Bind activates the tracker. Before Bind every observed commit passes
// through untouched.
func (t *Tracker) Bind() {
	t.bound.Store(true)
}

// Unbind deactivates the tracker again, used on engine shutdown.
func (t *Tracker) Unbind() {
	t.bound.Store(false)
}

// Hook implements store.CommitHook. Inserted and updated records get their
// updated_at stamped to now and their sync flag cleared, inside the same
// transaction as the observed edit. After the stamp an upload pass is
// requested without blocking; a request already pending is enough.
func (t *Tracker) Hook(ctx context.Context, st store.Stamper, set models.ChangeSet) error {
	if !t.bound.Load() {
		t.log.Debug().Str("func", "Hook").Msg("tracker not bound, commit passes unstamped")
		return nil
	}
	if t.coord.Busy() {
		return nil
	}

	now := t.now().UTC()
	for _, ref := range set.Inserted {
		if err := st.MarkDirty(ctx, ref, now); err != nil {
			return fmt.Errorf("stamp inserted %s/%s: %w", ref.Table, ref.ID, err)
		}
	}
	for _, ref := range set.Updated {
		if err := st.MarkDirty(ctx, ref, now); err != nil {
			return fmt.Errorf("stamp updated %s/%s: %w", ref.Table, ref.ID, err)
		}
	}

	select {
	case t.requests <- struct{}{}:
	default:
	}

	return nil
}
