package model

import "github.com/deppfellow/bookshelf/internal/validation"

// Messages of the book field rules.
const (
	MsgTitleRequired      = "Title is required"
	MsgAuthorRequired     = "Author is required"
	MsgPublishYearInvalid = "Publish year must be a number"
)

// ListBooksRequest has no input.
type ListBooksRequest struct{}

func (r *ListBooksRequest) Validate() error { return nil }

// CreateBookRequest is the body of POST /books.
//
// publishYear is only checked for presence here; converting it to a number is
// left to the store.
type CreateBookRequest struct {
	Title       validation.FieldValue `json:"title" form:"title"`
	Author      validation.FieldValue `json:"author" form:"author"`
	PublishYear validation.FieldValue `json:"publishYear" form:"publishYear"`
}

func (r *CreateBookRequest) Validate() error {
	return validation.RunRules(
		validation.Required("title", r.Title, MsgTitleRequired),
		validation.Required("author", r.Author, MsgAuthorRequired),
		validation.Required("publishYear", r.PublishYear, MsgPublishYearInvalid),
	)
}

// GetBookRequest addresses one book. The id is not format-checked.
type GetBookRequest struct {
	ID string `param:"id"`
}

func (r *GetBookRequest) Validate() error { return nil }

// UpdateBookRequest is PUT /books/:id. Unlike create, publishYear must be an
// integer. The id format is checked after the body, by the service.
type UpdateBookRequest struct {
	ID          string                `param:"id" json:"-" form:"-"`
	Title       validation.FieldValue `json:"title" form:"title"`
	Author      validation.FieldValue `json:"author" form:"author"`
	PublishYear validation.FieldValue `json:"publishYear" form:"publishYear"`
}

func (r *UpdateBookRequest) Validate() error {
	return validation.RunRules(
		validation.Required("title", r.Title, MsgTitleRequired),
		validation.Required("author", r.Author, MsgAuthorRequired),
		validation.Integer("publishYear", r.PublishYear, MsgPublishYearInvalid),
	)
}

// DeleteBookRequest addresses the book to remove.
type DeleteBookRequest struct {
	ID string `param:"id"`
}

func (r *DeleteBookRequest) Validate() error { return nil }
