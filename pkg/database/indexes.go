package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ItemsCollection  = "items"
	OrdersCollection = "orders"
	LogsCollection   = "logs"
)

// indexes lists the secondary indexes backing the list filters. Creating an
// index that already exists is a no-op on the server.
var indexes = map[string][]mongo.IndexModel{
	ItemsCollection: {
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetName("type_1")},
	},
	OrdersCollection: {
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("createdAt_-1")},
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("name_1_createdAt_-1"),
		},
	},
}

// EnsureIndexes creates the item and order indexes on d.
func EnsureIndexes(ctx context.Context, d *mongo.Database) error {
	for coll, models := range indexes {
		if _, err := d.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
