package handlers

import (
	"net/http"

	"github.com/anonto42/travel-plans/backend/internal/middleware"
	"github.com/anonto42/travel-plans/backend/internal/session"
	"github.com/labstack/echo/v4"
)

// requireSession returns the caller's session or a 401
func requireSession(c echo.Context) (*session.Session, error) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return s, nil
}
