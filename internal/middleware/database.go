// Package middleware contains Echo middleware shared by the API routes.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireDatabase short-circuits data routes with a 503 while the service
// has no live database connection. The live check is a closure so the
// wiring decides what "connected" means; handlers behind this middleware
// can assume their stores are usable.
func RequireDatabase(live func() bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !live() {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"error":   "database not connected",
					"message": "please try again in a moment",
				})
			}
			return next(c)
		}
	}
}
