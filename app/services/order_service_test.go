package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/pkg/testkit"
)

func newOrderFixture() (*OrderService, *testkit.OrderStore) {
	store := testkit.NewOrderStore()
	return NewOrderService(store), store
}

func validOrder() CreateOrderInput {
	return CreateOrderInput{Name: "Alice", Menu: "Burger", Quantity: "2", Type: "food"}
}

func TestCreateOrderForcesPending(t *testing.T) {
	svc, store := newOrderFixture()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	svc.now = func() time.Time { return fixed }

	order, err := svc.Create(context.Background(), validOrder())
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, fixed.Truncate(time.Millisecond), order.CreatedAt)
	assert.False(t, order.ID.IsZero())
	assert.Len(t, store.Orders(), 1)
}

func TestCreateOrderAcceptsStructuredMenu(t *testing.T) {
	svc, _ := newOrderFixture()
	in := validOrder()
	in.Menu = map[string]any{"id": "burger", "extras": []any{"cheese"}}

	order, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Menu, order.Menu)
}

func TestCreateOrderValidation(t *testing.T) {
	cases := map[string]func(*CreateOrderInput){
		"missing name":      func(in *CreateOrderInput) { in.Name = "" },
		"missing menu":      func(in *CreateOrderInput) { in.Menu = nil },
		"missing type":      func(in *CreateOrderInput) { in.Type = "" },
		"missing quantity":  func(in *CreateOrderInput) { in.Quantity = "" },
		"text quantity":     func(in *CreateOrderInput) { in.Quantity = "two" },
		"zero quantity":     func(in *CreateOrderInput) { in.Quantity = "0" },
		"negative quantity": func(in *CreateOrderInput) { in.Quantity = "-3" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, store := newOrderFixture()
			in := validOrder()
			mutate(&in)

			_, err := svc.Create(context.Background(), in)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Empty(t, store.Orders())
		})
	}
}

func TestParseQuantity(t *testing.T) {
	for raw, want := range map[string]int{"1": 1, " 3 ": 3, "2.9": 2, "1e2": 100} {
		got, err := ParseQuantity(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "abc", "0.5", "NaN", "Inf", "-1", "1e12"} {
		_, err := ParseQuantity(raw)
		assert.Error(t, err, raw)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	svc, _ := newOrderFixture()
	ctx := context.Background()
	t0 := time.Now()
	for i, name := range []string{"Alice", "Bob", "Alice"} {
		at := t0.Add(time.Duration(i) * time.Second)
		svc.now = func() time.Time { return at }
		in := validOrder()
		in.Name = name
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	alice, err := svc.List(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	for _, o := range alice {
		assert.Equal(t, "Alice", o.Name)
	}

	nobody, err := svc.List(ctx, "Carol")
	require.NoError(t, err)
	assert.NotNil(t, nobody)
	assert.Empty(t, nobody)
}

func TestUpdateStatus(t *testing.T) {
	svc, store := newOrderFixture()
	ctx := context.Background()
	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	id := order.ID.Hex()

	require.NoError(t, svc.UpdateStatus(ctx, id, models.OrderAccepted))
	require.NoError(t, svc.UpdateStatus(ctx, id, models.OrderAccepted))
	assert.Equal(t, models.OrderAccepted, store.Orders()[0].Status)

	var verr *ValidationError
	assert.ErrorAs(t, svc.UpdateStatus(ctx, id, " "), &verr)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, primitive.NewObjectID().Hex(), "accepted"), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, "zzz", ""), ErrNotFound)
}

func TestUpdateQuantity(t *testing.T) {
	svc, store := newOrderFixture()
	ctx := context.Background()
	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	id := order.ID.Hex()

	require.NoError(t, svc.UpdateQuantity(ctx, id, "5"))
	assert.Equal(t, 5, store.Orders()[0].Quantity)

	var verr *ValidationError
	assert.ErrorAs(t, svc.UpdateQuantity(ctx, id, "lots"), &verr)
	assert.Equal(t, 5, store.Orders()[0].Quantity)

	missing := primitive.NewObjectID().Hex()
	assert.ErrorIs(t, svc.UpdateQuantity(ctx, missing, "3"), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateQuantity(ctx, missing, "lots"), ErrNotFound)
}

func TestRejectUpdateChecksOrderFirst(t *testing.T) {
	svc, _ := newOrderFixture()
	ctx := context.Background()
	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)
	cause := errors.New("invalid JSON: expected a scalar")

	var verr *ValidationError
	require.ErrorAs(t, svc.RejectUpdate(ctx, order.ID.Hex(), cause), &verr)
	assert.Equal(t, cause.Error(), verr.Message)
	assert.ErrorIs(t, svc.RejectUpdate(ctx, primitive.NewObjectID().Hex(), cause), ErrNotFound)
	assert.ErrorIs(t, svc.RejectUpdate(ctx, "zzz", cause), ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	svc, store := newOrderFixture()
	ctx := context.Background()
	order, err := svc.Create(ctx, validOrder())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID.Hex()))
	assert.Empty(t, store.Orders())
	assert.ErrorIs(t, svc.Delete(ctx, order.ID.Hex()), ErrNotFound)
}

func TestOrderStoreFailureIsBackendError(t *testing.T) {
	store := new(testkit.MockOrderStore)
	store.On("Insert", mock.Anything, mock.Anything).Return(errors.New("no reachable servers"))
	store.On("SetStatus", mock.Anything, "abc", "accepted").Return(errors.New("no reachable servers"))

	svc := NewOrderService(store)
	_, err := svc.Create(context.Background(), validOrder())
	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, "insert order", berr.Op)

	assert.ErrorAs(t, svc.UpdateStatus(context.Background(), "abc", "accepted"), &berr)
	store.AssertExpectations(t)
}
