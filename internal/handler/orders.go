package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/after-school-booking/internal/queue"
)

// OrderResponse is the body returned after a successful order submission.
type OrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// PlaceOrder persists the submitted order. The payload shape is not
// validated by contract: any JSON object is stored verbatim, with the
// server adding createdAt and status. Placing an order does not adjust any
// lesson's seat count; clients follow up with PUT /lessons/:id.
func (h *BookingHandler) PlaceOrder(c echo.Context) error {
	payload := map[string]interface{}{}
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON body"})
	}

	ctx := c.Request().Context()
	id, err := h.Orders.Insert(ctx, payload)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	log.Printf("order saved: %s", id)

	if h.Publish != nil {
		ev := queue.OrderConfirmedEvent{
			OrderID:   id,
			Status:    "confirmed",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("order %s: publish event failed: %v", id, err)
		}
	}

	return c.JSON(http.StatusOK, OrderResponse{
		Success: true,
		OrderID: id,
		Message: "Order submitted successfully",
	})
}
