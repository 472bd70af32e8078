package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// GetAuthor fetches a single author by id, including soft-deleted ones.
func (s *Store) GetAuthor(ctx context.Context, id string) (models.Author, error) {
	query, args, err := selectAuthors().Where(byID(id)).ToSql()
	if err != nil {
		return models.Author{}, fmt.Errorf("build author query: %w", err)
	}

	a, err := scanAuthor(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Author{}, ErrNotFound
		}
		return models.Author{}, fmt.Errorf("get author %s: %w", id, err)
	}

	return a, nil
}

// ListAuthors returns all authors that are not soft-deleted.
func (s *Store) ListAuthors(ctx context.Context) ([]models.Author, error) {
	query, args, err := selectAuthors().Where(notDeleted()).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build author list query: %w", err)
	}

	return s.queryAuthors(ctx, query, args)
}

// DirtyAuthors returns every author whose local value has not been
// acknowledged by the remote store, soft-deleted ones included.
func (s *Store) DirtyAuthors(ctx context.Context) ([]models.Author, error) {
	query, args, err := selectAuthors().Where(dirtyOnly()).OrderBy("updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dirty author query: %w", err)
	}

	return s.queryAuthors(ctx, query, args)
}

// SaveAuthor persists a local edit. A missing id is assigned. The commit
// hooks observe the write, so the stored record comes back stamped dirty.
func (s *Store) SaveAuthor(ctx context.Context, a models.Author) (models.Author, error) {
	if a.ID == "" {
		a.ID = newID()
	}

	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableAutoren, a.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}

		if err = upsertAuthor(ctx, tx, a); err != nil {
			return models.ChangeSet{}, err
		}

		ref := models.RecordRef{Table: models.TableAutor, ID: a.ID}
		if exists {
			return models.ChangeSet{Updated: []models.RecordRef{ref}}, nil
		}
		return models.ChangeSet{Inserted: []models.RecordRef{ref}}, nil
	})
	if err != nil {
		return models.Author{}, fmt.Errorf("save author %s: %w", a.ID, err)
	}

	return a, nil
}

// SoftDeleteAuthor performs a local soft delete and cascades it to every book
// referencing the author, all in one transaction. The affected records enter
// the change set as updates — under a soft-delete design a deletion
// propagates as an ordinary field change.
func (s *Store) SoftDeleteAuthor(ctx context.Context, id string) error {
	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableAutoren, id)
		if err != nil {
			return models.ChangeSet{}, err
		}
		if !exists {
			return models.ChangeSet{}, ErrNotFound
		}

		childIDs, err := bookIDsByAuthor(ctx, tx, id)
		if err != nil {
			return models.ChangeSet{}, err
		}

		query, args, err := softDeleteQuery(tableAutoren, id).ToSql()
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("build author soft delete: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return models.ChangeSet{}, fmt.Errorf("soft delete author: %w", err)
		}

		set := models.ChangeSet{Updated: []models.RecordRef{{Table: models.TableAutor, ID: id}}}
		for _, childID := range childIDs {
			query, args, err = softDeleteQuery(tableBuecher, childID).ToSql()
			if err != nil {
				return models.ChangeSet{}, fmt.Errorf("build book soft delete: %w", err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return models.ChangeSet{}, fmt.Errorf("cascade soft delete book %s: %w", childID, err)
			}
			set.Updated = append(set.Updated, models.RecordRef{Table: models.TableBuch, ID: childID})
		}

		return set, nil
	})
	if err != nil {
		return fmt.Errorf("soft delete author %s: %w", id, err)
	}

	return nil
}

// ApplyAuthor is the create-or-update path for remote records: the remote
// field values are written verbatim and the record is marked synced.
func (s *Store) ApplyAuthor(ctx context.Context, rec models.AuthorRemote) error {
	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableAutoren, rec.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}

		a := models.Author{
			ID:        rec.ID,
			UpdatedAt: rec.UpdatedAt,
			IsSynced:  true,
			IsDeleted: rec.IsDeleted,
			Name:      rec.Name,
			BirthYear: rec.BirthYear,
		}
		if err = upsertAuthor(ctx, tx, a); err != nil {
			return models.ChangeSet{}, err
		}

		ref := models.RecordRef{Table: models.TableAutor, ID: rec.ID}
		if exists {
			return models.ChangeSet{Updated: []models.RecordRef{ref}}, nil
		}
		return models.ChangeSet{Inserted: []models.RecordRef{ref}}, nil
	})
	if err != nil {
		return fmt.Errorf("apply remote author %s: %w", rec.ID, err)
	}

	return nil
}

// SoftDeleteAuthorByID applies a remote-driven soft delete: the author is
// flagged deleted with the remote timestamp and stays synced; referencing
// books are cascaded. A missing author is a no-op.
func (s *Store) SoftDeleteAuthorByID(ctx context.Context, rec models.AuthorRemote) error {
	log := logger.FromContext(ctx)

	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableAutoren, rec.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}
		if !exists {
			log.Debug().Str("id", rec.ID).Msg("remote delete for unknown author ignored")
			return models.ChangeSet{}, nil
		}

		childIDs, err := bookIDsByAuthor(ctx, tx, rec.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}

		query, args, err := qb.Update(tableAutoren).
			Set("is_deleted", true).
			Set("is_synced", true).
			Set("updated_at", rec.UpdatedAt).
			Where(byID(rec.ID)).ToSql()
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("build remote author soft delete: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return models.ChangeSet{}, fmt.Errorf("remote soft delete author: %w", err)
		}

		set := models.ChangeSet{Updated: []models.RecordRef{{Table: models.TableAutor, ID: rec.ID}}}
		for _, childID := range childIDs {
			query, args, err = softDeleteQuery(tableBuecher, childID).ToSql()
			if err != nil {
				return models.ChangeSet{}, fmt.Errorf("build book cascade: %w", err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return models.ChangeSet{}, fmt.Errorf("cascade remote soft delete book %s: %w", childID, err)
			}
			set.Updated = append(set.Updated, models.RecordRef{Table: models.TableBuch, ID: childID})
		}

		return set, nil
	})
	if err != nil {
		return fmt.Errorf("remote soft delete author %s: %w", rec.ID, err)
	}

	return nil
}

func (s *Store) queryAuthors(ctx context.Context, query string, args []any) ([]models.Author, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var items []models.Author
	for rows.Next() {
		a, scanErr := scanAuthor(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan author row: %w", scanErr)
		}
		items = append(items, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate author rows: %w", rowsErr)
	}

	return items, nil
}

func upsertAuthor(ctx context.Context, tx *sql.Tx, a models.Author) error {
	query, args, err := qb.Insert(tableAutoren).
		Columns(authorColumns...).
		Values(a.ID, a.UpdatedAt, a.IsSynced, a.IsDeleted, a.Name, a.BirthYear).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			updated_at  = excluded.updated_at,
			is_synced   = excluded.is_synced,
			is_deleted  = excluded.is_deleted,
			name        = excluded.name,
			geburtsjahr = excluded.geburtsjahr`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build author upsert: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert author %s: %w", a.ID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(row rowScanner) (models.Author, error) {
	var a models.Author
	err := row.Scan(&a.ID, &a.UpdatedAt, &a.IsSynced, &a.IsDeleted, &a.Name, &a.BirthYear)
	return a, err
}

func recordExists(ctx context.Context, tx *sql.Tx, table, id string) (bool, error) {
	query, args, err := qb.Select("1").From(table).Where(byID(id)).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check %s/%s exists: %w", table, id, err)
	}

	return true, nil
}

func bookIDsByAuthor(ctx context.Context, tx *sql.Tx, authorID string) ([]string, error) {
	query, args, err := qb.Select("id").From(tableBuecher).
		Where(byAuthor(authorID)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build child book query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query child books: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan child book id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func newID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
