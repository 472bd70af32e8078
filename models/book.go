package models

import "time"

// Book is the locally persisted representation of a row in the remote "Buch"
// table. AuthorID is a nullable foreign reference to an Author.
type Book struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	IsSynced  bool      `json:"-"`
	IsDeleted bool      `json:"is_deleted"`

	Title    string  `json:"titel"`
	Pages    int     `json:"seiten"`
	AuthorID *string `json:"autor_id"`
}

// BookRemote is the wire shape of a book record as stored in the remote
// "Buch" table.
type BookRemote struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`

	Title    string  `json:"titel"`
	Pages    int     `json:"seiten"`
	AuthorID *string `json:"autor_id"`
}

// NewBookRemote maps a local book to its wire shape for upload.
func NewBookRemote(b Book) BookRemote {
	return BookRemote{
		ID:        b.ID,
		UpdatedAt: b.UpdatedAt,
		IsDeleted: b.IsDeleted,
		Title:     b.Title,
		Pages:     b.Pages,
		AuthorID:  b.AuthorID,
	}
}
