// Package model defines the entities persisted by the booking API.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson is a bookable after-school class offering. Price is in whole
// currency units and Spaces is the remaining seat count; both must stay
// non-negative. LastUpdated is stamped by the seat-adjustment operation
// and is absent on freshly seeded records.
type Lesson struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject     string             `bson:"subject" json:"subject"`
	Location    string             `bson:"location" json:"location"`
	Price       int                `bson:"price" json:"price"`
	Spaces      int                `bson:"spaces" json:"spaces"`
	LastUpdated *time.Time         `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
}
