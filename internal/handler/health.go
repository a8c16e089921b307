package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// BannerResponse is the liveness banner served at the root path.
type BannerResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
	Database  string    `json:"database"`
}

// HealthResponse reports service and database health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Root serves a liveness banner. It always answers 200; the database field
// tells clients whether data endpoints will work.
func (h *BookingHandler) Root(c echo.Context) error {
	db := "connected"
	if h.Store == nil {
		db = "disconnected"
	}
	return c.JSON(http.StatusOK, BannerResponse{
		Message:   "After School Classes API",
		Timestamp: time.Now().UTC(),
		Status:    "running",
		Database:  db,
	})
}

// Health probes the database connection and reports degraded status with a
// 503 instead of failing. A missing connection and a failed ping are both
// unhealthy; only the latter carries the probe error.
func (h *BookingHandler) Health(c echo.Context) error {
	now := time.Now().UTC()
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Timestamp: now,
		})
	}
	if err := h.Store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Error:     err.Error(),
			Timestamp: now,
		})
	}
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
	})
}
