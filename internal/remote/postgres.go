// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// notifyChannel is the Postgres NOTIFY channel carrying row-change payloads,
// emitted by triggers on the synchronized tables.
const notifyChannel = "booksync_changes"

var pq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Postgres is the direct-database implementation of the remote store, used
// when the backing service is reachable as a plain Postgres instance. Change
// events arrive over LISTEN/NOTIFY instead of a websocket.
type Postgres struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPostgres(ctx context.Context, dsn string, log *logger.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres remote: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres remote: %w: %w", ErrTransport, err)
	}

	return &Postgres{pool: pool, log: log}, nil
}

func (p *Postgres) UpsertAuthors(ctx context.Context, recs []models.AuthorRemote) error {
	for _, rec := range recs {
		query, args, err := pq.Insert(`"Autor"`).
			Columns("id", "updated_at", "is_deleted", "name", "geburtsjahr").
			Values(rec.ID, rec.UpdatedAt, rec.IsDeleted, rec.Name, rec.BirthYear).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				updated_at  = excluded.updated_at,
				is_deleted  = excluded.is_deleted,
				name        = excluded.name,
				geburtsjahr = excluded.geburtsjahr`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build author upsert: %w", err)
		}

		if _, err = p.pool.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert author %s: %w", rec.ID, mapPgError(err))
		}
	}

	return nil
}

func (p *Postgres) UpsertBooks(ctx context.Context, recs []models.BookRemote) error {
	for _, rec := range recs {
		query, args, err := pq.Insert(`"Buch"`).
			Columns("id", "updated_at", "is_deleted", "titel", "seiten", "autor_id").
			Values(rec.ID, rec.UpdatedAt, rec.IsDeleted, rec.Title, rec.Pages, rec.AuthorID).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				updated_at = excluded.updated_at,
				is_deleted = excluded.is_deleted,
				titel      = excluded.titel,
				seiten     = excluded.seiten,
				autor_id   = excluded.autor_id`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build book upsert: %w", err)
		}

		if _, err = p.pool.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert book %s: %w", rec.ID, mapPgError(err))
		}
	}

	return nil
}

func (p *Postgres) AuthorsSince(ctx context.Context, t time.Time) ([]models.AuthorRemote, error) {
	query, args, err := pq.Select("id", "updated_at", "is_deleted", "name", "geburtsjahr").
		From(`"Autor"`).
		Where(sq.GtOrEq{"updated_at": t}).
		OrderBy("updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build authors since query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors since: %w: %w", ErrTransport, err)
	}
	defer rows.Close()

	var recs []models.AuthorRemote
	for rows.Next() {
		var rec models.AuthorRemote
		if err = rows.Scan(&rec.ID, &rec.UpdatedAt, &rec.IsDeleted, &rec.Name, &rec.BirthYear); err != nil {
			return nil, fmt.Errorf("scan remote author: %w: %w", ErrDecode, err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (p *Postgres) BooksSince(ctx context.Context, t time.Time) ([]models.BookRemote, error) {
	query, args, err := pq.Select("id", "updated_at", "is_deleted", "titel", "seiten", "autor_id").
		From(`"Buch"`).
		Where(sq.GtOrEq{"updated_at": t}).
		OrderBy("updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books since query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books since: %w: %w", ErrTransport, err)
	}
	defer rows.Close()

	var recs []models.BookRemote
	for rows.Next() {
		var rec models.BookRemote
		if err = rows.Scan(&rec.ID, &rec.UpdatedAt, &rec.IsDeleted, &rec.Title, &rec.Pages, &rec.AuthorID); err != nil {
			return nil, fmt.Errorf("scan remote book: %w: %w", ErrDecode, err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (p *Postgres) ProbeUpdatedAt(ctx context.Context, table, id string) (time.Time, error) {
	quoted, err := remoteTable(table)
	if err != nil {
		return time.Time{}, err
	}

	query, args, err := pq.Select("updated_at").From(quoted).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("build probe query: %w", err)
	}

	var updatedAt time.Time
	err = p.pool.QueryRow(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("probe %s/%s: %w: %w", table, id, ErrTransport, err)
	}

	return updatedAt, nil
}

// Subscribe takes a dedicated connection from the pool, issues LISTEN and
// feeds decoded notification payloads into the returned channel until ctx is
// cancelled or the connection dies.
func (p *Postgres) Subscribe(ctx context.Context) (<-chan models.ChangeEvent, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w: %w", ErrTransport, err)
	}

	if _, err = conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w: %w", notifyChannel, ErrTransport, err)
	}

	events := make(chan models.ChangeEvent, feedBuffer)
	go func() {
		defer close(events)
		defer conn.Release()

		for {
			n, waitErr := conn.Conn().WaitForNotification(ctx)
			if waitErr != nil {
				if ctx.Err() == nil {
					p.log.Debug().Err(waitErr).Msg("notification feed closed")
				}
				return
			}

			var ev models.ChangeEvent
			if decodeErr := json.Unmarshal([]byte(n.Payload), &ev); decodeErr != nil {
				p.log.Warn().Err(decodeErr).Msg("undecodable notification payload skipped")
				continue
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// Unsubscribe is a no-op: the listen goroutine holds the subscriber's
// context and releases its connection back to the pool when that context is
// cancelled. The pool stays open for a later Subscribe.
func (p *Postgres) Unsubscribe() error {
	return nil
}

// Close shuts the pool down permanently. Only the composition root calls
// this; after Close the backend cannot be resubscribed.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
	}

	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func remoteTable(table string) (string, error) {
	switch table {
	case models.TableAutor:
		return `"Autor"`, nil
	case models.TableBuch:
		return `"Buch"`, nil
	default:
		return "", fmt.Errorf("%w: unknown remote table %s", ErrDecode, table)
	}
}
