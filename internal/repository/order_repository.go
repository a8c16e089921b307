package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ordersCollection is the append-only collection of submitted orders.
const ordersCollection = "orders"

// OrderRepo persists submitted orders. Orders are written once and never
// read back by the API, so the repository exposes only Insert.
type OrderRepo struct {
	col *mongo.Collection
}

// NewOrderRepo constructs an OrderRepo over the given database.
func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection(ordersCollection)}
}

// Insert stores the client payload verbatim, adding the server-assigned
// createdAt timestamp and a fixed "confirmed" status, and returns the new
// order's hex id. The payload shape is deliberately not validated: the
// order document is whatever the client submitted.
func (r *OrderRepo) Insert(ctx context.Context, payload map[string]interface{}) (string, error) {
	doc := bson.M{}
	for k, v := range payload {
		doc[k] = v
	}
	doc["createdAt"] = time.Now().UTC()
	doc["status"] = "confirmed"

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	// A client-supplied _id of another type passes through unchanged.
	return fmt.Sprintf("%v", res.InsertedID), nil
}
