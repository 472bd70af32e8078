package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// GetBook fetches a single book by id, including soft-deleted ones.
func (s *Store) GetBook(ctx context.Context, id string) (models.Book, error) {
	query, args, err := selectBooks().Where(byID(id)).ToSql()
	if err != nil {
		return models.Book{}, fmt.Errorf("build book query: %w", err)
	}

	b, err := scanBook(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("get book %s: %w", id, err)
	}

	return b, nil
}

// ListBooks returns all books that are not soft-deleted.
func (s *Store) ListBooks(ctx context.Context) ([]models.Book, error) {
	query, args, err := selectBooks().Where(notDeleted()).OrderBy("titel").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book list query: %w", err)
	}

	return s.queryBooks(ctx, query, args)
}

// DirtyBooks returns every book whose local value has not been acknowledged
// by the remote store, soft-deleted ones included.
func (s *Store) DirtyBooks(ctx context.Context) ([]models.Book, error) {
	query, args, err := selectBooks().Where(dirtyOnly()).OrderBy("updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dirty book query: %w", err)
	}

	return s.queryBooks(ctx, query, args)
}

// SaveBook persists a local edit. A missing id is assigned. The commit hooks
// observe the write, so the stored record comes back stamped dirty.
func (s *Store) SaveBook(ctx context.Context, b models.Book) (models.Book, error) {
	if b.ID == "" {
		b.ID = newID()
	}

	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableBuecher, b.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}

		if err = upsertBook(ctx, tx, b); err != nil {
			return models.ChangeSet{}, err
		}

		ref := models.RecordRef{Table: models.TableBuch, ID: b.ID}
		if exists {
			return models.ChangeSet{Updated: []models.RecordRef{ref}}, nil
		}
		return models.ChangeSet{Inserted: []models.RecordRef{ref}}, nil
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("save book %s: %w", b.ID, err)
	}

	return b, nil
}

// SoftDeleteBook performs a local soft delete of a single book.
func (s *Store) SoftDeleteBook(ctx context.Context, id string) error {
	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableBuecher, id)
		if err != nil {
			return models.ChangeSet{}, err
		}
		if !exists {
			return models.ChangeSet{}, ErrNotFound
		}

		query, args, err := softDeleteQuery(tableBuecher, id).ToSql()
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("build book soft delete: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return models.ChangeSet{}, fmt.Errorf("soft delete book: %w", err)
		}

		return models.ChangeSet{Updated: []models.RecordRef{{Table: models.TableBuch, ID: id}}}, nil
	})
	if err != nil {
		return fmt.Errorf("soft delete book %s: %w", id, err)
	}

	return nil
}

// ApplyBook is the create-or-update path for remote book records. An unknown
// book whose referenced author does not exist locally is dropped silently —
// a child is never created with a dangling parent reference. For a book that
// already exists locally the author reference is nulled out when the parent
// is missing, mirroring the update semantics of the remote schema.
func (s *Store) ApplyBook(ctx context.Context, rec models.BookRemote) error {
	log := logger.FromContext(ctx)

	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableBuecher, rec.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}

		authorID := rec.AuthorID
		orphaned := false
		if authorID != nil {
			parentExists, parentErr := recordExists(ctx, tx, tableAutoren, *authorID)
			if parentErr != nil {
				return models.ChangeSet{}, parentErr
			}
			if !parentExists {
				authorID = nil
				orphaned = true
			}
		}

		if !exists && orphaned {
			log.Debug().
				Str("id", rec.ID).
				Str("titel", rec.Title).
				Msg("dropping remote book without local author")
			return models.ChangeSet{}, nil
		}

		b := models.Book{
			ID:        rec.ID,
			UpdatedAt: rec.UpdatedAt,
			IsSynced:  true,
			IsDeleted: rec.IsDeleted,
			Title:     rec.Title,
			Pages:     rec.Pages,
			AuthorID:  authorID,
		}
		if err = upsertBook(ctx, tx, b); err != nil {
			return models.ChangeSet{}, err
		}

		ref := models.RecordRef{Table: models.TableBuch, ID: rec.ID}
		if exists {
			return models.ChangeSet{Updated: []models.RecordRef{ref}}, nil
		}
		return models.ChangeSet{Inserted: []models.RecordRef{ref}}, nil
	})
	if err != nil {
		return fmt.Errorf("apply remote book %s: %w", rec.ID, err)
	}

	return nil
}

// SoftDeleteBookByID applies a remote-driven soft delete. A missing book is
// a no-op.
func (s *Store) SoftDeleteBookByID(ctx context.Context, rec models.BookRemote) error {
	log := logger.FromContext(ctx)

	err := s.commit(ctx, func(tx *sql.Tx) (models.ChangeSet, error) {
		exists, err := recordExists(ctx, tx, tableBuecher, rec.ID)
		if err != nil {
			return models.ChangeSet{}, err
		}
		if !exists {
			log.Debug().Str("id", rec.ID).Msg("remote delete for unknown book ignored")
			return models.ChangeSet{}, nil
		}

		query, args, err := qb.Update(tableBuecher).
			Set("is_deleted", true).
			Set("is_synced", true).
			Set("updated_at", rec.UpdatedAt).
			Where(byID(rec.ID)).ToSql()
		if err != nil {
			return models.ChangeSet{}, fmt.Errorf("build remote book soft delete: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return models.ChangeSet{}, fmt.Errorf("remote soft delete book: %w", err)
		}

		return models.ChangeSet{Updated: []models.RecordRef{{Table: models.TableBuch, ID: rec.ID}}}, nil
	})
	if err != nil {
		return fmt.Errorf("remote soft delete book %s: %w", rec.ID, err)
	}

	return nil
}

func (s *Store) queryBooks(ctx context.Context, query string, args []any) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var items []models.Book
	for rows.Next() {
		b, scanErr := scanBook(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan book row: %w", scanErr)
		}
		items = append(items, b)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate book rows: %w", rowsErr)
	}

	return items, nil
}

func upsertBook(ctx context.Context, tx *sql.Tx, b models.Book) error {
	query, args, err := qb.Insert(tableBuecher).
		Columns(bookColumns...).
		Values(b.ID, b.UpdatedAt, b.IsSynced, b.IsDeleted, b.Title, b.Pages, b.AuthorID).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			is_synced  = excluded.is_synced,
			is_deleted = excluded.is_deleted,
			titel      = excluded.titel,
			seiten     = excluded.seiten,
			autor_id   = excluded.autor_id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build book upsert: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert book %s: %w", b.ID, err)
	}

	return nil
}

func scanBook(row rowScanner) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.UpdatedAt, &b.IsSynced, &b.IsDeleted, &b.Title, &b.Pages, &b.AuthorID)
	return b, err
}
