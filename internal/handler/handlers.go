package handler

import (
	"github.com/deppfellow/bookshelf/internal/server"
	"github.com/deppfellow/bookshelf/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Book    *BookHandler
	System  *SystemHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Book:    NewBookHandler(s, services.Book),
		System:  NewSystemHandler(s),
		Health:  NewHealthHandler(s, services.Book),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
