package testkit

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/orderdesk/delivery/app/models"
	"github.com/orderdesk/delivery/app/repositories"
)

func TestFillResolvesWildcards(t *testing.T) {
	expected := map[string]any{"_id": "*", "name": "Burger", "tags": []any{"*", "b"}}
	actual := map[string]any{"_id": "65f0", "name": "Burger", "tags": []any{"a", "b"}}
	assert.Equal(t, actual, fill(expected, actual))

	missing := map[string]any{"_id": "*"}
	assert.NotEqual(t, map[string]any{}, fill(missing, map[string]any{}))
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "health.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "ok", "requestUrl": "/healthz", "expectedCode": 200, "responseBody": {"status": "*"}}
	]`), 0o644))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	RunFile(t, func() http.Handler { return handler }, path)
}

func TestLoadScenariosValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "no url", "expectedCode": 200}]`), 0o644))

	_, err := LoadScenarios(path)
	assert.ErrorContains(t, err, "requestUrl is required")
}

func TestItemStore(t *testing.T) {
	ctx := context.Background()
	s := NewItemStore(
		models.Item{Name: "Burger", Type: "food"},
		models.Item{Name: "Cola", Type: "drink"},
	)

	food, _ := s.List(ctx, "food")
	require.Len(t, food, 1)

	name := "Cheeseburger"
	got, err := s.Update(ctx, food[0].ID.Hex(), repositories.ItemUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Cheeseburger", got.Name)
	assert.Equal(t, "food", got.Type)

	assert.ErrorIs(t, s.Delete(ctx, "nope"), repositories.ErrNotFound)
	assert.NoError(t, s.Delete(ctx, got.ID.Hex()))
	assert.Len(t, s.Items(), 1)
}

func TestOrderStoreNewestFirst(t *testing.T) {
	ctx := context.Background()
	t0 := time.Now()
	s := NewOrderStore(
		models.Order{Name: "Alice", CreatedAt: t0},
		models.Order{Name: "Alice", CreatedAt: t0.Add(time.Second)},
		models.Order{Name: "Bob", CreatedAt: t0.Add(2 * time.Second)},
	)

	alice, _ := s.List(ctx, "Alice")
	require.Len(t, alice, 2)
	assert.True(t, alice[0].CreatedAt.After(alice[1].CreatedAt))

	ok, _ := s.Exists(ctx, primitive.NewObjectID().Hex())
	assert.False(t, ok)
	assert.ErrorIs(t, s.SetStatus(ctx, "bad", "accepted"), repositories.ErrNotFound)
}
