// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Christoph Rohrer

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Local table names backing the remote schema.
const (
	tableAutoren = "autoren"
	tableBuecher = "buecher"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var (
	authorColumns = []string{"id", "updated_at", "is_synced", "is_deleted", "name", "geburtsjahr"}
	bookColumns   = []string{"id", "updated_at", "is_synced", "is_deleted", "titel", "seiten", "autor_id"}
)

func selectAuthors() sq.SelectBuilder {
	return qb.Select(authorColumns...).From(tableAutoren)
}

func selectBooks() sq.SelectBuilder {
	return qb.Select(bookColumns...).From(tableBuecher)
}

// Typed predicates over the synchronized tables. Sync code composes these
// instead of embedding raw query fragments.

func byID(id string) sq.Sqlizer {
	return sq.Eq{"id": id}
}

func dirtyOnly() sq.Sqlizer {
	return sq.Eq{"is_synced": false}
}

func notDeleted() sq.Sqlizer {
	return sq.Eq{"is_deleted": false}
}

func byAuthor(id string) sq.Sqlizer {
	return sq.Eq{"autor_id": id}
}

func markDirtyQuery(table, id string, now time.Time) sq.UpdateBuilder {
	return qb.Update(table).
		Set("updated_at", now).
		Set("is_synced", false).
		Where(byID(id))
}

func markSyncedQuery(table, id string, updatedAt time.Time) sq.UpdateBuilder {
	return qb.Update(table).
		Set("is_synced", true).
		Where(sq.And{byID(id), sq.Eq{"updated_at": updatedAt}})
}

func softDeleteQuery(table, id string) sq.UpdateBuilder {
	return qb.Update(table).
		Set("is_deleted", true).
		Where(byID(id))
}
