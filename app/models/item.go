package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is a menu entry. Image is the public URL of its picture; items
// created without one point at the shared default asset.
type Item struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name"          json:"name"`
	Type  string             `bson:"type"          json:"type"`
	Image string             `bson:"image"         json:"image"`
}
