// Package router builds the echo instance: global middleware, the error
// handler, and the route groups mapped onto their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/handler"
	"github.com/deppfellow/bookshelf/internal/middleware"
	"github.com/deppfellow/bookshelf/internal/server"
)

// NewRouter wires middleware and routes.
//
// Order matters: the request id and the New Relic transaction must exist
// before the context enhancer builds the request logger, and the logger must
// exist before the request logger, the rate limiter and CSRF may use it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.CSRF(),
	)

	registerSystemRoutes(router, h)
	registerBookRoutes(router.Group("/books"), h)

	return router
}
