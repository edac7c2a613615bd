package model

// Success messages of the mutating book operations.
const (
	MsgBookUpdated = "Book Updated Successfully"
	MsgBookDeleted = "Book Deleted Successfully"
)

// ListBooksResponse is the body of GET /books.
type ListBooksResponse struct {
	Count int    `json:"count"`
	Data  []Book `json:"data"`
}

// NewListBooksResponse wraps books; a nil slice is sent as [].
func NewListBooksResponse(books []Book) *ListBooksResponse {
	if books == nil {
		books = []Book{}
	}
	return &ListBooksResponse{Count: len(books), Data: books}
}

// ItemCount reports the number of listed books, for tracing.
func (r *ListBooksResponse) ItemCount() int {
	return r.Count
}

// BookMutationResponse is the body of a successful update or delete.
type BookMutationResponse struct {
	Message string `json:"message"`
	Data    *Book  `json:"data"`
}
