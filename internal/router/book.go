package router

import (
	"net/http"

	"github.com/deppfellow/bookshelf/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerBookRoutes mounts the book resource on g.
func registerBookRoutes(g *echo.Group, h *handler.Handlers) {
	book := h.Book

	g.GET("", handler.Handle(book.Handler, book.ListBooks, http.StatusOK))
	g.POST("", handler.Handle(book.Handler, book.CreateBook, http.StatusCreated))
	g.GET("/:id", handler.Handle(book.Handler, book.GetBook, http.StatusOK))
	g.PUT("/:id", handler.Handle(book.Handler, book.UpdateBook, http.StatusOK))
	g.DELETE("/:id", handler.Handle(book.Handler, book.DeleteBook, http.StatusOK))
}
