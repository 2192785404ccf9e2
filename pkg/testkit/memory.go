package testkit

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/app/repositories"
)

// ItemStore is an in-memory item repository. It keeps insertion order and
// reports unknown or malformed ids as repositories.ErrNotFound.
type ItemStore struct {
	mu    sync.Mutex
	items []models.Item
}

func NewItemStore(seed ...models.Item) *ItemStore {
	s := &ItemStore{}
	for i := range seed {
		_ = s.Insert(context.Background(), &seed[i])
	}
	return s
}

func (s *ItemStore) List(_ context.Context, typ string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Item{}
	for _, it := range s.items {
		if typ == "" || it.Type == typ {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *ItemStore) Insert(_ context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	s.items = append(s.items, *item)
	return nil
}

func (s *ItemStore) FindByID(_ context.Context, id string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	it := s.items[i]
	return &it, nil
}

func (s *ItemStore) Update(_ context.Context, id string, u repositories.ItemUpdate) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	if u.Name != nil {
		s.items[i].Name = *u.Name
	}
	if u.Type != nil {
		s.items[i].Type = *u.Type
	}
	if u.Image != nil {
		s.items[i].Image = *u.Image
	}
	it := s.items[i]
	return &it, nil
}

func (s *ItemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// Items returns a snapshot of the stored items.
func (s *ItemStore) Items() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Item(nil), s.items...)
}

func (s *ItemStore) index(id string) int {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1
	}
	for i, it := range s.items {
		if it.ID == oid {
			return i
		}
	}
	return -1
}

// OrderStore is an in-memory order repository listing newest first.
type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewOrderStore(seed ...models.Order) *OrderStore {
	s := &OrderStore{}
	for i := range seed {
		_ = s.Insert(context.Background(), &seed[i])
	}
	return s
}

func (s *OrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (s *OrderStore) List(_ context.Context, name string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if name == "" || o.Name == name {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *OrderStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index(id) >= 0, nil
}

func (s *OrderStore) SetStatus(_ context.Context, id, status string) error {
	return s.mutate(id, func(o *models.Order) { o.Status = status })
}

func (s *OrderStore) SetQuantity(_ context.Context, id string, quantity int) error {
	return s.mutate(id, func(o *models.Order) { o.Quantity = quantity })
}

func (s *OrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return nil
}

// Orders returns a snapshot of the stored orders in insertion order.
func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *OrderStore) mutate(id string, fn func(*models.Order)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return repositories.ErrNotFound
	}
	fn(&s.orders[i])
	return nil
}

func (s *OrderStore) index(id string) int {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return -1
	}
	for i, o := range s.orders {
		if o.ID == oid {
			return i
		}
	}
	return -1
}
