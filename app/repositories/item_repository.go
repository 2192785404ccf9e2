package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/pkg/database"
	"github.com/orderdesk/delivery/pkg/metrics"
)

// ItemUpdate carries the fields to overwrite. Nil fields are left alone.
type ItemUpdate struct {
	Name  *string
	Type  *string
	Image *string
}

// Empty reports whether the update would change nothing.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.Image == nil
}

func (u ItemUpdate) set() bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Type != nil {
		set["type"] = *u.Type
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	return set
}

// ItemRepository handles database operations for Item.
type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection(database.ItemsCollection)}
}

// List returns every item, or only those of typ when it is non-empty,
// in storage order.
func (r *ItemRepository) List(ctx context.Context, typ string) (items []models.Item, err error) {
	defer metrics.ObserveStore(database.ItemsCollection, "find", time.Now(), &err)

	filter := bson.M{}
	if typ != "" {
		filter["type"] = typ
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	items = []models.Item{}
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Insert persists item and sets its ID.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) (err error) {
	defer metrics.ObserveStore(database.ItemsCollection, "insert", time.Now(), &err)

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

// FindByID looks up an item by its hex identifier.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (item *models.Item, err error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	defer metrics.ObserveStore(database.ItemsCollection, "find_one", time.Now(), &err)

	item = &models.Item{}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies u and returns the item as stored afterwards.
func (r *ItemRepository) Update(ctx context.Context, id string, u ItemUpdate) (item *models.Item, err error) {
	if u.Empty() {
		return r.FindByID(ctx, id)
	}
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	defer metrics.ObserveStore(database.ItemsCollection, "update", time.Now(), &err)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	item = &models.Item{}
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": u.set()}, opts).Decode(item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item record.
func (r *ItemRepository) Delete(ctx context.Context, id string) (err error) {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	defer metrics.ObserveStore(database.ItemsCollection, "delete", time.Now(), &err)

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
