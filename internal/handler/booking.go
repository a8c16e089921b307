// Package handler exposes the HTTP handlers of the booking API. Each
// handler validates its input, performs exactly one store operation and
// maps the result to a typed JSON response. Store failures are translated
// into the error taxonomy here and never leak driver types to clients.
package handler

import (
	"context"

	"github.com/iliyamo/after-school-booking/internal/model"
	"github.com/iliyamo/after-school-booking/internal/queue"
)

// LessonStore is the persistence boundary for lessons. Implemented by
// repository.LessonRepo; faked in tests.
type LessonStore interface {
	ListAll(ctx context.Context) ([]model.Lesson, error)
	Search(ctx context.Context, term string) ([]model.Lesson, error)
	SetSpaces(ctx context.Context, id string, spaces int) (int64, error)
}

// OrderStore is the persistence boundary for orders.
type OrderStore interface {
	Insert(ctx context.Context, payload map[string]interface{}) (string, error)
}

// Pinger reports whether the underlying database connection is alive.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BookingHandler aggregates the stores behind the booking endpoints. The
// store fields are nil when the service runs without a database; data
// routes are then short-circuited by the database-required middleware, and
// the banner and health handlers report the degraded state themselves.
type BookingHandler struct {
	Lessons LessonStore
	Orders  OrderStore
	Store   Pinger

	// Publish sends an order-confirmed event after a successful insert.
	// Best effort: failures are logged, never surfaced to the client.
	// Nil disables publishing.
	Publish func(ctx context.Context, ev queue.OrderConfirmedEvent) error
}
