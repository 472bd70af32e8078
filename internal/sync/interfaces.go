// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

// Package sync implements the bidirectional synchronization engine: a
// periodic upload/download job, a realtime change listener and the local
// change tracking that feeds them.
package sync

import (
	"context"
	"time"

	"github.com/crohrer/booksync/models"
)

// LocalStore is the engine's view of the local persistence layer.
// *store.Store satisfies it.
type LocalStore interface {
	DirtyAuthors(ctx context.Context) ([]models.Author, error)
	DirtyBooks(ctx context.Context) ([]models.Book, error)
	MarkSynced(ctx context.Context, ref models.RecordRef, updatedAt time.Time) error

	ApplyAuthor(ctx context.Context, rec models.AuthorRemote) error
	ApplyBook(ctx context.Context, rec models.BookRemote) error
	SoftDeleteAuthorByID(ctx context.Context, rec models.AuthorRemote) error
	SoftDeleteBookByID(ctx context.Context, rec models.BookRemote) error

	WipeAll(ctx context.Context) error
	LastSyncDate(ctx context.Context) (time.Time, error)
	SetLastSyncDate(ctx context.Context, t time.Time) error
}

// RemoteStore is the engine's view of the remote backing store. Both the REST
// client and the direct-Postgres backend satisfy it. Unsubscribe tears down
// only the change-feed subscription; Close releases the backend for good and
// is the composition root's call to make, not the engine's.
type RemoteStore interface {
	UpsertAuthors(ctx context.Context, recs []models.AuthorRemote) error
	UpsertBooks(ctx context.Context, recs []models.BookRemote) error
	AuthorsSince(ctx context.Context, t time.Time) ([]models.AuthorRemote, error)
	BooksSince(ctx context.Context, t time.Time) ([]models.BookRemote, error)
	ProbeUpdatedAt(ctx context.Context, table, id string) (time.Time, error)
	Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error)
	Unsubscribe() error
	Close() error
}
