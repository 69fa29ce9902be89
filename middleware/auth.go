package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// NavIdentHeader carries the caseworker identity on inbound requests
	NavIdentHeader = "Nav-Ident"
	// ContextKeyNavIdent is the context key for the caseworker identity
	ContextKeyNavIdent = "navIdent"
)

// RequireAuth is middleware that requires a bearer token and a caseworker
// identity header. The token is opaque to this service and only checked for
// presence; outbound calls use the service's own machine token.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing bearer token")
			}

			navIdent := c.Request().Header.Get(NavIdentHeader)
			if navIdent == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Nav-Ident header")
			}

			c.Set(ContextKeyNavIdent, navIdent)

			return next(c)
		}
	}
}

// GetNavIdent returns the authenticated caseworker identity from the context
func GetNavIdent(c echo.Context) string {
	if ident, ok := c.Get(ContextKeyNavIdent).(string); ok {
		return ident
	}
	return ""
}
