package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/deppfellow/bookshelf/internal/middleware"
	"github.com/deppfellow/bookshelf/internal/server"
)

// WelcomeMessage is the body of GET /.
const WelcomeMessage = "Welcome to the Bookshelf API!"

// SystemHandler serves the root greeting and the CSRF token.
type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// Welcome greets the client, tagging production deployments.
func (h *SystemHandler) Welcome(c echo.Context) error {
	message := WelcomeMessage
	if h.server.Config.IsProduction() {
		message += " [Deployed]"
	}
	return c.String(http.StatusOK, message)
}

// CSRFTokenResponse is the body of GET /csrf-token.
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// CSRFToken returns the token the CSRF middleware issued for this client; the
// same value is in the `_csrf` cookie.
func (h *SystemHandler) CSRFToken(c echo.Context) error {
	token, ok := c.Get(middleware.CSRFContextKey).(string)
	if !ok || token == "" {
		return errs.NewInternalServerError()
	}
	return c.JSON(http.StatusOK, CSRFTokenResponse{CSRFToken: token})
}
