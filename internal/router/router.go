// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/after-school-booking/internal/handler"
)

// RegisterRoutes maps the booking API onto the provided Echo instance.
// requireDB guards every data route with a 503 while the database is down;
// cache is the Redis response cache and applies to the read routes only.
// requireDB runs before cache so an outage is never masked by a stale hit.
func RegisterRoutes(e *echo.Echo, h *handler.BookingHandler, requireDB, cache echo.MiddlewareFunc) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	e.GET("/lessons", h.ListLessons, requireDB, cache)
	e.GET("/search", h.SearchLessons, requireDB, cache)
	e.POST("/orders", h.PlaceOrder, requireDB)
	e.PUT("/lessons/:id", h.UpdateSpaces, requireDB)
}
