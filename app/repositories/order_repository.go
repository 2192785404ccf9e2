package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/pkg/database"
	"github.com/orderdesk/delivery/pkg/metrics"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(database.OrdersCollection)}
}

// Insert persists order and sets its ID.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) (err error) {
	defer metrics.ObserveStore(database.OrdersCollection, "insert", time.Now(), &err)

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return nil
}

// List returns orders newest first, restricted to name when non-empty.
func (r *OrderRepository) List(ctx context.Context, name string) (orders []models.Order, err error) {
	defer metrics.ObserveStore(database.OrdersCollection, "find", time.Now(), &err)

	filter := bson.M{}
	if name != "" {
		filter["name"] = name
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	orders = []models.Order{}
	if err = cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Exists reports whether an order with id is stored.
func (r *OrderRepository) Exists(ctx context.Context, id string) (ok bool, err error) {
	oid, err := objectID(id)
	if err != nil {
		return false, nil
	}
	defer metrics.ObserveStore(database.OrdersCollection, "count", time.Now(), &err)

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetStatus overwrites the order's status.
func (r *OrderRepository) SetStatus(ctx context.Context, id, status string) error {
	return r.set(ctx, id, "update_status", bson.M{"status": status})
}

// SetQuantity overwrites the order's quantity.
func (r *OrderRepository) SetQuantity(ctx context.Context, id string, quantity int) error {
	return r.set(ctx, id, "update_quantity", bson.M{"quantity": quantity})
}

func (r *OrderRepository) set(ctx context.Context, id, op string, fields bson.M) (err error) {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	defer metrics.ObserveStore(database.OrdersCollection, op, time.Now(), &err)

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the order record.
func (r *OrderRepository) Delete(ctx context.Context, id string) (err error) {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	defer metrics.ObserveStore(database.OrdersCollection, "delete", time.Now(), &err)

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
