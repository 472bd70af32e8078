// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

const lastSyncDateKey = "last_sync_date"

// Stamper is the transaction-scoped handle commit hooks receive. MarkDirty
// writes happen inside the same transaction as the observed commit.
type Stamper interface {
	MarkDirty(ctx context.Context, ref models.RecordRef, now time.Time) error
}

// CommitHook observes the pre-commit change set of a local transaction.
// A non-nil error aborts the whole transaction.
type CommitHook func(ctx context.Context, s Stamper, set models.ChangeSet) error

// Store is the local persistence layer for all synchronized entities.
// Every mutating operation runs inside a single transaction and notifies the
// registered commit hooks with the transaction's change set before commit.
type Store struct {
	db  *DB
	log *logger.Logger

	mu    sync.RWMutex
	hooks []CommitHook
}

func NewStore(db *DB, log *logger.Logger) *Store {
	return &Store{db: db, log: log}
}

// RegisterCommitHook adds h to the hooks invoked before every mutating
// commit. Hooks run in registration order.
func (s *Store) RegisterCommitHook(h CommitHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// stamperTx adapts a *sql.Tx to the Stamper contract.
type stamperTx struct {
	tx *sql.Tx
}

func (s *stamperTx) MarkDirty(ctx context.Context, ref models.RecordRef, now time.Time) error {
	table, err := localTable(ref.Table)
	if err != nil {
		return err
	}

	query, args, err := markDirtyQuery(table, ref.ID, now).ToSql()
	if err != nil {
		return fmt.Errorf("build mark dirty query: %w", err)
	}
	if _, err = s.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark dirty %s/%s: %w", ref.Table, ref.ID, err)
	}

	return nil
}

// commit runs fn inside a transaction, hands the resulting change set to the
// registered hooks, and commits. Any error rolls the transaction back.
func (s *Store) commit(ctx context.Context, fn func(tx *sql.Tx) (models.ChangeSet, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	set, err := fn(tx)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if !set.Empty() {
		s.mu.RLock()
		hooks := s.hooks
		s.mu.RUnlock()

		stamper := &stamperTx{tx: tx}
		for _, hook := range hooks {
			if hookErr := hook(ctx, stamper, set); hookErr != nil {
				_ = tx.Rollback()
				return fmt.Errorf("commit hook: %w", hookErr)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// MarkSynced flips is_synced for the referenced record, but only if its
// updated_at still equals updatedAt — a record mutated again since the upload
// was read stays dirty.
func (s *Store) MarkSynced(ctx context.Context, ref models.RecordRef, updatedAt time.Time) error {
	table, err := localTable(ref.Table)
	if err != nil {
		return err
	}

	query, args, err := markSyncedQuery(table, ref.ID, updatedAt).ToSql()
	if err != nil {
		return fmt.Errorf("build mark synced query: %w", err)
	}
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark synced %s/%s: %w", ref.Table, ref.ID, err)
	}

	return nil
}

// WipeAll physically removes every synchronized record of every type.
// Only the full-refresh path is allowed to call it; commit hooks are not
// notified (the wipe is not a local edit).
func (s *Store) WipeAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wipe transaction: %w", err)
	}

	// children first, the FK points at autoren
	for _, table := range []string{tableBuecher, tableAutoren} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("wipe %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit wipe: %w", err)
	}

	return nil
}

// LastSyncDate returns the persisted timestamp of the last fully successful
// download pass, or the zero time when no sync has completed yet.
func (s *Store) LastSyncDate(ctx context.Context) (time.Time, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value FROM sync_meta WHERE key = ?", lastSyncDateKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read last sync date: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse last sync date %q: %w", raw, err)
	}

	return t, nil
}

// SetLastSyncDate persists t as the new last-sync watermark.
func (s *Store) SetLastSyncDate(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sync_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		lastSyncDateKey, t.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("persist last sync date: %w", err)
	}

	return nil
}

// localTable maps a remote table name to its local counterpart.
func localTable(remote string) (string, error) {
	switch remote {
	case models.TableAutor:
		return tableAutoren, nil
	case models.TableBuch:
		return tableBuecher, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, remote)
	}
}
