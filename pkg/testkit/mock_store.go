package testkit

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/app/repositories"
)

// MockItemStore is a testify mock of the item repository, for injecting
// store failures:
//
//	store := new(testkit.MockItemStore)
//	store.On("List", mock.Anything, "").Return(nil, errors.New("connection reset"))
type MockItemStore struct{ mock.Mock }

func (m *MockItemStore) List(ctx context.Context, typ string) ([]models.Item, error) {
	args := m.Called(ctx, typ)
	items, _ := args.Get(0).([]models.Item)
	return items, args.Error(1)
}

func (m *MockItemStore) Insert(ctx context.Context, item *models.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemStore) FindByID(ctx context.Context, id string) (*models.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.Item)
	return item, args.Error(1)
}

func (m *MockItemStore) Update(ctx context.Context, id string, u repositories.ItemUpdate) (*models.Item, error) {
	args := m.Called(ctx, id, u)
	item, _ := args.Get(0).(*models.Item)
	return item, args.Error(1)
}

func (m *MockItemStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockOrderStore is a testify mock of the order repository.
type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Insert(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderStore) List(ctx context.Context, name string) ([]models.Order, error) {
	args := m.Called(ctx, name)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderStore) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderStore) SetStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockOrderStore) SetQuantity(ctx context.Context, id string, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockOrderStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
