package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Known order statuses. Status is stored as an open string; staff clients
// may use values outside this set.
const (
	OrderPending  = "pending"
	OrderAccepted = "accepted"
	OrderRejected = "rejected"
)

// Order is a request for Quantity of Menu placed by Name.
// Menu is either a plain string or a structured document.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Menu      any                `bson:"menu"          json:"menu"`
	Quantity  int                `bson:"quantity"      json:"quantity"`
	Type      string             `bson:"type"          json:"type"`
	Status    string             `bson:"status"        json:"status"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}
