// Package model holds the persisted domain types.
package model

import "time"

// Book is a single record of the books collection.
//
// The JSON shape mirrors the document the store hands back: the id travels as
// `_id` and the timestamps are maintained by the store.
type Book struct {
	ID          string    `json:"_id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Author      string    `json:"author" db:"author"`
	PublishYear int       `json:"publishYear" db:"publish_year"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// BookPatch carries the fields an update overwrites. Nil fields are left as
// they are.
type BookPatch struct {
	Title       *string
	Author      *string
	PublishYear *int
}

// IsEmpty reports whether the patch changes nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.PublishYear == nil
}

// Apply writes the non-nil fields of the patch onto b.
func (p BookPatch) Apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.PublishYear != nil {
		b.PublishYear = *p.PublishYear
	}
}
