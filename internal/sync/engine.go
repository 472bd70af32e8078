// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crohrer/booksync/internal/config"
	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/store"
)

// Engine wires the sync components together and owns their lifecycle: the
// change tracker hooked into the local store, the upload pump it feeds, the
// periodic job and the realtime listener.
type Engine struct {
	local      *store.Store
	remote     RemoteStore
	coord      *Coordinator
	uploader   *Uploader
	downloader *Downloader
	listener   *Listener
	tracker    *Tracker
	job        *Job
	requests   chan struct{}
	log        *logger.Logger

	started atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(local *store.Store, rs RemoteStore, cfg config.Sync, log *logger.Logger) *Engine {
	coord := &Coordinator{}
	requests := make(chan struct{}, 1)
	registry := NewRegistry(log)

	e := &Engine{
		local:      local,
		remote:     rs,
		coord:      coord,
		uploader:   NewUploader(local, rs, coord, log),
		downloader: NewDownloader(local, rs, coord, cfg.FullRefreshAfter, log),
		listener:   NewListener(local, rs, coord, registry, log),
		tracker:    NewTracker(coord, requests, log),
		requests:   requests,
		log:        log,
	}
	e.job = NewJob(cfg.Interval, e.tick, log)

	local.RegisterCommitHook(e.tracker.Hook)

	return e
}

// Start activates change tracking and launches the upload pump, the realtime
// listener and the periodic job. Idempotent; a second Start is a no-op.
func (e *Engine) Start(ctx context.Context) {
	if !e.started.CompareAndSwap(false, true) {
		return
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.tracker.Bind()

	e.wg.Add(2)
	go e.pumpUploads(ctx)
	go e.runListener(ctx)

	e.job.Start(ctx)

	e.log.Info().Msg("sync engine started")
}

// Stop shuts everything down in reverse order and deactivates change
// tracking. Only the change-feed subscription is torn down; the backend
// itself stays usable so a later Start (sign-in after sign-out) can resume on
// the same handle. Local edits made while stopped stay pending and are picked
// up by the first pass after the next Start.
func (e *Engine) Stop() {
	if !e.started.CompareAndSwap(true, false) {
		return
	}

	e.job.Stop()
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.tracker.Unbind()
	_ = e.remote.Unsubscribe()

	e.log.Info().Msg("sync engine stopped")
}

// SyncNow runs one full pass immediately: download first so remote wins are
// in place, then upload what is still pending.
func (e *Engine) SyncNow(ctx context.Context) error {
	if !e.started.Load() {
		return ErrNoStore
	}

	if err := e.downloader.FetchRemoteChanges(ctx); err != nil {
		return err
	}
	return e.uploader.UploadPending(ctx)
}

// CatchUp is the pass after connectivity or a session comes back: pending
// offline edits go up first, then the remote backlog comes down.
func (e *Engine) CatchUp(ctx context.Context) error {
	if !e.started.Load() {
		return ErrNoStore
	}

	if err := e.uploader.UploadPending(ctx); err != nil {
		return err
	}
	return e.downloader.FetchRemoteChanges(ctx)
}

// FullRefresh discards the local dataset and rebuilds it from the remote
// store.
func (e *Engine) FullRefresh(ctx context.Context) error {
	if !e.started.Load() {
		return ErrNoStore
	}

	return e.downloader.FullRefresh(ctx)
}

func (e *Engine) tick(ctx context.Context) {
	if err := e.downloader.FetchRemoteChanges(ctx); err != nil {
		e.log.Warn().Err(err).Msg("periodic download pass failed")
	}
	if err := e.uploader.UploadPending(ctx); err != nil {
		e.log.Warn().Err(err).Msg("periodic upload pass failed")
	}
}

// pumpUploads serializes the upload requests the tracker fires after local
// commits.
func (e *Engine) pumpUploads(ctx context.Context) {
	defer e.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.requests:
			if err := e.uploader.UploadPending(ctx); err != nil {
				e.log.Warn().Err(err).Msg("requested upload pass failed")
			}
		}
	}
}

// runListener keeps the realtime subscription alive, resubscribing with a
// flat delay whenever the feed drops.
func (e *Engine) runListener(ctx context.Context) {
	defer e.wg.Done()

	const resubscribeDelay = 5 * time.Second

	for {
		err := e.listener.Run(ctx)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		if err != nil {
			e.log.Warn().Err(err).Msg("realtime listener failed, resubscribing")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}
