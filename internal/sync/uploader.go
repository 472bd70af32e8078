// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/internal/remote"
	"github.com/crohrer/booksync/models"
)

// Uploader pushes locally modified records to the remote store, one record at
// a time so a single poisoned record cannot block the rest of the queue.
type Uploader struct {
	local  LocalStore
	remote RemoteStore
	coord  *Coordinator
	log    *logger.Logger
}

func NewUploader(local LocalStore, rs RemoteStore, coord *Coordinator, log *logger.Logger) *Uploader {
	return &Uploader{local: local, remote: rs, coord: coord, log: log}
}

// UploadPending uploads every dirty record. When another upload pass already
// holds the guard the call is a silent no-op. When the store is clean no
// remote call is made at all. Per-record failures are logged and skipped;
// the affected records stay dirty for the next pass.
func (u *Uploader) UploadPending(ctx context.Context) error {
	release, ok := u.coord.BeginUpload()
	if !ok {
		u.log.Debug().Str("func", "UploadPending").Msg("upload pass already in flight, skipping")
		return nil
	}
	defer release()

	authors, err := u.local.DirtyAuthors(ctx)
	if err != nil {
		return fmt.Errorf("collect dirty authors: %w", err)
	}
	books, err := u.local.DirtyBooks(ctx)
	if err != nil {
		return fmt.Errorf("collect dirty books: %w", err)
	}

	if len(authors) == 0 && len(books) == 0 {
		return nil
	}

	u.log.Debug().
		Str("func", "UploadPending").
		Int("authors", len(authors)).
		Int("books", len(books)).
		Msg("uploading pending records")

	// parents first, the remote schema enforces the book -> author reference
	var failed int
	for _, a := range authors {
		if pushErr := u.pushAuthor(ctx, a); pushErr != nil {
			failed++
			u.log.Warn().Err(pushErr).Str("id", a.ID).Msg("author upload failed, record stays pending")
		}
	}
	for _, b := range books {
		if pushErr := u.pushBook(ctx, b); pushErr != nil {
			failed++
			u.log.Warn().Err(pushErr).Str("id", b.ID).Msg("book upload failed, record stays pending")
		}
	}

	if failed > 0 {
		return fmt.Errorf("upload pass: %d of %d records failed", failed, len(authors)+len(books))
	}

	return nil
}

func (u *Uploader) pushAuthor(ctx context.Context, a models.Author) error {
	skip, err := u.remoteIsNewer(ctx, models.TableAutor, a.ID, a.UpdatedAt)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	if err = u.remote.UpsertAuthors(ctx, []models.AuthorRemote{models.NewAuthorRemote(a)}); err != nil {
		return fmt.Errorf("push author: %w", err)
	}

	if err = u.local.MarkSynced(ctx, models.RecordRef{Table: models.TableAutor, ID: a.ID}, a.UpdatedAt); err != nil {
		return fmt.Errorf("acknowledge author: %w", err)
	}

	return nil
}

func (u *Uploader) pushBook(ctx context.Context, b models.Book) error {
	skip, err := u.remoteIsNewer(ctx, models.TableBuch, b.ID, b.UpdatedAt)
	if err != nil {
		return err
	}
	if skip {
		return nil
	}

	if err = u.remote.UpsertBooks(ctx, []models.BookRemote{models.NewBookRemote(b)}); err != nil {
		return fmt.Errorf("push book: %w", err)
	}

	if err = u.local.MarkSynced(ctx, models.RecordRef{Table: models.TableBuch, ID: b.ID}, b.UpdatedAt); err != nil {
		return fmt.Errorf("acknowledge book: %w", err)
	}

	return nil
}

// remoteIsNewer probes the remote record's timestamp before pushing. A record
// the remote does not know yet is always pushed. When the remote copy is
// strictly newer the local edit loses and the push is skipped; the record
// stays dirty until the next download brings the winning version in.
func (u *Uploader) remoteIsNewer(ctx context.Context, table, id string, local time.Time) (bool, error) {
	remoteUpdatedAt, err := u.remote.ProbeUpdatedAt(ctx, table, id)
	if errors.Is(err, remote.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("probe %s/%s: %w", table, id, err)
	}

	if RemoteWins(local, remoteUpdatedAt) {
		u.log.Debug().
			Str("table", table).
			Str("id", id).
			Time("local", local).
			Time("remote", remoteUpdatedAt).
			Msg("remote copy is newer, upload skipped")
		return true, nil
	}

	return false, nil
}
