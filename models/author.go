package models

import "time"

// Author is the locally persisted representation of a row in the remote
// "Autor" table. IsSynced is local bookkeeping only and never leaves the
// process.
type Author struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	IsSynced  bool      `json:"-"`
	IsDeleted bool      `json:"is_deleted"`

	Name      string `json:"name"`
	BirthYear int    `json:"geburtsjahr"`
}

// AuthorRemote is the wire shape of an author record as stored in the remote
// "Autor" table.
type AuthorRemote struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`

	Name      string `json:"name"`
	BirthYear int    `json:"geburtsjahr"`
}

// NewAuthorRemote maps a local author to its wire shape for upload.
func NewAuthorRemote(a Author) AuthorRemote {
	return AuthorRemote{
		ID:        a.ID,
		UpdatedAt: a.UpdatedAt,
		IsDeleted: a.IsDeleted,
		Name:      a.Name,
		BirthYear: a.BirthYear,
	}
}
