package store

import "errors"

var (
	// ErrNotFound is returned by point lookups when no record with the
	// requested id exists locally.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownTable is returned when a record reference names a table that
	// is not part of the synchronized schema.
	ErrUnknownTable = errors.New("unknown table")
)
