package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/pkg/metrics"
	"github.com/orderdesk/delivery/pkg/validate"
)

// OrderStore is the persistence the order service needs.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	List(ctx context.Context, name string) ([]models.Order, error)
	Exists(ctx context.Context, id string) (bool, error)
	SetStatus(ctx context.Context, id, status string) error
	SetQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}

// CreateOrderInput is the payload for OrderService.Create. Quantity is
// kept as text and parsed by the service.
type CreateOrderInput struct {
	Name     string `json:"name"     validate:"required"`
	Menu     any    `json:"menu"     validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	Type     string `json:"type"     validate:"required"`
}

type OrderService struct {
	store OrderStore
	now   func() time.Time
}

func NewOrderService(store OrderStore) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

// Create places a new order. Status always starts as pending and
// CreatedAt is assigned here.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, invalidFields(errs)
	}
	quantity, err := ParseQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Name:     in.Name,
		Menu:     in.Menu,
		Quantity: quantity,
		Type:     in.Type,
		Status:   models.OrderPending,
		// Stored with millisecond precision.
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.store.Insert(ctx, order); err != nil {
		return nil, storeErr("insert order", err)
	}
	metrics.OrdersCreated.Inc()
	return order, nil
}

// List returns orders newest first, only those placed by name when it is
// non-empty.
func (s *OrderService) List(ctx context.Context, name string) ([]models.Order, error) {
	orders, err := s.store.List(ctx, name)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	return orders, nil
}

// UpdateStatus sets the status of the order with id.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if strings.TrimSpace(status) == "" {
		return s.rejectInput(ctx, id, invalid("status is required"))
	}
	return storeErr("update order status", s.store.SetStatus(ctx, id, status))
}

// UpdateQuantity sets the quantity of the order with id.
func (s *OrderService) UpdateQuantity(ctx context.Context, id, quantity string) error {
	n, err := ParseQuantity(quantity)
	if err != nil {
		return s.rejectInput(ctx, id, err)
	}
	return storeErr("update order quantity", s.store.SetQuantity(ctx, id, n))
}

// Delete removes the order with id.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return storeErr("delete order", s.store.Delete(ctx, id))
}

// RejectUpdate answers an update body that could not be decoded: ErrNotFound
// when the order with id does not exist, a ValidationError otherwise.
func (s *OrderService) RejectUpdate(ctx context.Context, id string, cause error) error {
	return s.rejectInput(ctx, id, invalid("%s", cause.Error()))
}

// rejectInput reports bad input against an existing order, and
// ErrNotFound when the order does not exist.
func (s *OrderService) rejectInput(ctx context.Context, id string, verr error) error {
	ok, err := s.store.Exists(ctx, id)
	if err != nil {
		return storeErr("find order", err)
	}
	if !ok {
		return ErrNotFound
	}
	return verr
}

// ParseQuantity reads a decimal number, truncates it to a whole count and
// requires it to be at least one.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid("quantity is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid("quantity must be a number")
	}
	f = math.Trunc(f)
	if f < 1 {
		return 0, invalid("quantity must be at least 1")
	}
	if f > math.MaxInt32 {
		return 0, invalid("quantity is too large")
	}
	return int(f), nil
}
