package middleware

import (
	"errors"

	"github.com/anonto42/travel-plans/backend/internal/session"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session"

// LoadSession resolves the caller's session and stores it in the context.
// Anonymous requests and rejected credentials both continue without a session;
// each handler decides whether it needs one.
func LoadSession(provider session.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := provider.GetSession(c.Request().Context(), c.Request().Header)
			switch {
			case err == nil:
				c.Set(sessionContextKey, s)
			case errors.Is(err, session.ErrNoCredentials):
			default:
				c.Logger().Debugf("session rejected: %v", err)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session stored by LoadSession, or nil
func CurrentSession(c echo.Context) *session.Session {
	s, _ := c.Get(sessionContextKey).(*session.Session)
	return s
}
