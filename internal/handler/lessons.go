package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/after-school-booking/internal/repository"
)

// UpdateSpacesRequest is the body of PUT /lessons/:id. Spaces is a pointer
// so a missing field is distinguishable from an explicit zero.
type UpdateSpacesRequest struct {
	Spaces *int `json:"spaces"`
}

// UpdateSpacesResponse reports the outcome of a seat adjustment. A
// ModifiedCount of zero with Success true means the id was well formed but
// matched no lesson, or the lesson already had that seat count.
type UpdateSpacesResponse struct {
	Success       bool   `json:"success"`
	ModifiedCount int64  `json:"modifiedCount"`
	LessonID      string `json:"lessonId"`
	NewSpaces     int    `json:"newSpaces"`
}

// ListLessons returns the full lesson catalog as a JSON array.
func (h *BookingHandler) ListLessons(c echo.Context) error {
	lessons, err := h.Lessons.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, lessons)
}

// SearchLessons returns lessons whose subject or location contains the q
// query parameter, case-insensitively. A missing or empty q is rejected
// before any store call is made.
func (h *BookingHandler) SearchLessons(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query parameter q is required"})
	}
	lessons, err := h.Lessons.Search(c.Request().Context(), term)
	if err != nil {
		if errors.Is(err, repository.ErrEmptySearchTerm) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, lessons)
}

// UpdateSpaces sets a lesson's remaining seat count. The new count must be
// present and non-negative; validation happens before the store is touched.
// Seat adjustment is deliberately a separate call from order placement, so
// the two are not atomic.
func (h *BookingHandler) UpdateSpaces(c echo.Context) error {
	var req UpdateSpacesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON body"})
	}
	if req.Spaces == nil || *req.Spaces < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "valid spaces value required"})
	}

	id := c.Param("id")
	modified, err := h.Lessons.SetSpaces(c.Request().Context(), id, *req.Spaces)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLessonID) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, UpdateSpacesResponse{
		Success:       true,
		ModifiedCount: modified,
		LessonID:      id,
		NewSpaces:     *req.Spaces,
	})
}
