// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// distantPast is the watermark used when no sync has happened yet or after a
// local wipe: an incremental fetch from here is a complete snapshot.
var distantPast = time.Unix(0, 0).UTC()

// Downloader pulls remote changes into the local store. It runs incremental
// fetches against the last-sync watermark and falls back to a full refresh
// when the device has been offline longer than the configured threshold.
type Downloader struct {
	local     LocalStore
	remote    RemoteStore
	coord     *Coordinator
	threshold time.Duration
	now       func() time.Time
	log       *logger.Logger
}

func NewDownloader(local LocalStore, rs RemoteStore, coord *Coordinator, threshold time.Duration, log *logger.Logger) *Downloader {
	return &Downloader{
		local:     local,
		remote:    rs,
		coord:     coord,
		threshold: threshold,
		now:       time.Now,
		log:       log,
	}
}

// FetchRemoteChanges runs one download pass. When another download already
// holds the guard the call is a silent no-op. A watermark older than the
// refresh threshold escalates the pass to a full refresh, so stale soft
// deletes that the remote may have pruned cannot linger locally.
func (d *Downloader) FetchRemoteChanges(ctx context.Context) error {
	release, ok := d.coord.BeginDownload()
	if !ok {
		d.log.Debug().Str("func", "FetchRemoteChanges").Msg("download pass already in flight, skipping")
		return nil
	}
	defer release()

	last, err := d.local.LastSyncDate(ctx)
	if err != nil {
		return fmt.Errorf("read sync watermark: %w", err)
	}

	if !last.IsZero() && d.now().Sub(last) > d.threshold {
		d.log.Info().
			Time("last_sync", last).
			Dur("threshold", d.threshold).
			Msg("sync watermark too old, escalating to full refresh")
		return d.refresh(ctx)
	}

	since := last
	if since.IsZero() {
		since = distantPast
	}

	return d.incremental(ctx, since)
}

// FullRefresh discards all local records and rebuilds them from a complete
// remote snapshot. Returns ErrBusy when a download pass is already running.
func (d *Downloader) FullRefresh(ctx context.Context) error {
	release, ok := d.coord.BeginDownload()
	if !ok {
		return ErrBusy
	}
	defer release()

	return d.refresh(ctx)
}

// refresh wipes the local dataset, resets the watermark and pulls a full
// snapshot. The caller holds the download guard.
func (d *Downloader) refresh(ctx context.Context) error {
	if err := d.local.WipeAll(ctx); err != nil {
		return fmt.Errorf("wipe local store: %w", err)
	}
	if err := d.local.SetLastSyncDate(ctx, distantPast); err != nil {
		return fmt.Errorf("reset sync watermark: %w", err)
	}

	return d.incremental(ctx, distantPast)
}

// incremental fetches and applies every remote change with updated_at >=
// since, authors before books so a new book never arrives ahead of its
// author. The watermark only advances after the whole pass succeeded; a
// partial pass is re-fetched next time, which is safe because every apply is
// idempotent.
func (d *Downloader) incremental(ctx context.Context, since time.Time) error {
	start := d.now().UTC()

	authors, err := d.remote.AuthorsSince(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch remote authors: %w", err)
	}
	books, err := d.remote.BooksSince(ctx, since)
	if err != nil {
		return fmt.Errorf("fetch remote books: %w", err)
	}

	for _, rec := range authors {
		if err = d.applyAuthor(ctx, rec); err != nil {
			return err
		}
	}
	for _, rec := range books {
		if err = d.applyBook(ctx, rec); err != nil {
			return err
		}
	}

	if err = d.local.SetLastSyncDate(ctx, start); err != nil {
		return fmt.Errorf("advance sync watermark: %w", err)
	}

	if len(authors) > 0 || len(books) > 0 {
		d.log.Debug().
			Str("func", "incremental").
			Int("authors", len(authors)).
			Int("books", len(books)).
			Time("since", since).
			Msg("remote changes applied")
	}

	return nil
}

func (d *Downloader) applyAuthor(ctx context.Context, rec models.AuthorRemote) error {
	if rec.IsDeleted {
		if err := d.local.SoftDeleteAuthorByID(ctx, rec); err != nil {
			return fmt.Errorf("apply remote author delete %s: %w", rec.ID, err)
		}
		return nil
	}

	if err := d.local.ApplyAuthor(ctx, rec); err != nil {
		return fmt.Errorf("apply remote author %s: %w", rec.ID, err)
	}

	return nil
}

func (d *Downloader) applyBook(ctx context.Context, rec models.BookRemote) error {
	if rec.IsDeleted {
		if err := d.local.SoftDeleteBookByID(ctx, rec); err != nil {
			return fmt.Errorf("apply remote book delete %s: %w", rec.ID, err)
		}
		return nil
	}

	if err := d.local.ApplyBook(ctx, rec); err != nil {
		return fmt.Errorf("apply remote book %s: %w", rec.ID, err)
	}

	return nil
}
