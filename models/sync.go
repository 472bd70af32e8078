package models

import "encoding/json"

// Table names as they exist in the remote schema.
const (
	TableAutor = "Autor"
	TableBuch  = "Buch"
)

// Op is the operation type carried by a realtime change event.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

// ChangeEvent is one entry of the remote change feed. Record holds the new
// row for INSERT/UPDATE, OldRecord the previous row for DELETE.
type ChangeEvent struct {
	Table     string          `json:"table"`
	Op        Op              `json:"type"`
	Record    json.RawMessage `json:"record,omitempty"`
	OldRecord json.RawMessage `json:"old_record,omitempty"`
}

// RecordRef identifies a single synchronized record by table and id.
type RecordRef struct {
	Table string
	ID    string
}

// ChangeSet is the pre-commit view of a local transaction: every synchronized
// record it inserts, updates or soft-deletes. Commit hooks receive it before
// the transaction commits.
type ChangeSet struct {
	Inserted []RecordRef
	Updated  []RecordRef
	Deleted  []RecordRef
}

// Empty reports whether the change set contains no records at all.
func (c ChangeSet) Empty() bool {
	return len(c.Inserted) == 0 && len(c.Updated) == 0 && len(c.Deleted) == 0
}
