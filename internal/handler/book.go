package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/model"
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/service"
)

// BookHandler serves the /books resource.
type BookHandler struct {
	Handler
	bookService *service.BookService
}

func NewBookHandler(s *server.Server, bookService *service.BookService) *BookHandler {
	return &BookHandler{
		Handler:     NewHandler(s),
		bookService: bookService,
	}
}

func (h *BookHandler) ListBooks(c echo.Context, _ *model.ListBooksRequest) (*model.ListBooksResponse, error) {
	books, err := h.bookService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return model.NewListBooksResponse(books), nil
}

func (h *BookHandler) CreateBook(c echo.Context, req *model.CreateBookRequest) (*model.Book, error) {
	return h.bookService.Create(c.Request().Context(), req)
}

// GetBook answers 200 with the record, or with null when there is none.
func (h *BookHandler) GetBook(c echo.Context, req *model.GetBookRequest) (*model.Book, error) {
	return h.bookService.GetByID(c.Request().Context(), req.ID)
}

func (h *BookHandler) UpdateBook(c echo.Context, req *model.UpdateBookRequest) (*model.BookMutationResponse, error) {
	book, err := h.bookService.Update(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	return &model.BookMutationResponse{Message: model.MsgBookUpdated, Data: book}, nil
}

func (h *BookHandler) DeleteBook(c echo.Context, req *model.DeleteBookRequest) (*model.BookMutationResponse, error) {
	book, err := h.bookService.Delete(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &model.BookMutationResponse{Message: model.MsgBookDeleted, Data: book}, nil
}
