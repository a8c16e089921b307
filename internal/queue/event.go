// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderConfirmedEvent is published after an order is successfully stored.
// Order payloads are schema-free, so the event carries only the
// server-assigned fields; consumers needing more must look the order up.
type OrderConfirmedEvent struct {
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}
