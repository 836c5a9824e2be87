package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brigade/internal/domain"
	"brigade/internal/errors"
)

func testOrder(id, number, tableID string, status domain.OrderStatus) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:      id,
		Number:  number,
		TableID: tableID,
		Status:  status,
		Items: []domain.OrderLineItem{
			{ID: id + "-item-1", MenuItemID: "menu-1", Name: "Margherita Pizza", Price: 12.50, Quantity: 1, Status: domain.ItemStatusPending},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryOrderStore_SaveAndFindByID(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	order := testOrder("o1", "ORD-001", "table-1", domain.OrderStatusPending)
	require.NoError(t, store.Save(ctx, &order))

	found, err := store.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", found.Number)
	assert.Len(t, found.Items, 1)
}

func TestMemoryOrderStore_FindByID_NotFound(t *testing.T) {
	store := NewMemoryOrderStore()

	found, err := store.FindByID(context.Background(), "missing")
	assert.Nil(t, found)
	require.Error(t, err)

	nfe, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.Contains(t, nfe.Message, "missing")
}

func TestMemoryOrderStore_Save_FullOverwrite(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	order := testOrder("o1", "ORD-001", "table-1", domain.OrderStatusPending)
	require.NoError(t, store.Save(ctx, &order))

	order.Status = domain.OrderStatusPreparing
	order.Items = append(order.Items, domain.OrderLineItem{
		ID: "o1-item-2", MenuItemID: "menu-2", Name: "Caesar Salad", Price: 8.00, Quantity: 2, Status: domain.ItemStatusPending,
	})
	require.NoError(t, store.Save(ctx, &order))

	found, err := store.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, found.Status)
	assert.Len(t, found.Items, 2)
}

func TestMemoryOrderStore_CopyIsolation(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	order := testOrder("o1", "ORD-001", "table-1", domain.OrderStatusPending)
	require.NoError(t, store.Save(ctx, &order))

	// Mutating a returned copy must not leak into the store.
	found, err := store.FindByID(ctx, "o1")
	require.NoError(t, err)
	found.Items[0].Status = domain.ItemStatusServed
	found.Status = domain.OrderStatusCancelled

	again, err := store.FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, again.Status)
	assert.Equal(t, domain.ItemStatusPending, again.Items[0].Status)
}

func TestMemoryOrderStore_List_Filters(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	o1 := testOrder("o1", "ORD-001", "table-1", domain.OrderStatusPending)
	o2 := testOrder("o2", "ORD-002", "table-2", domain.OrderStatusPreparing)
	o3 := testOrder("o3", "ORD-003", "table-1", domain.OrderStatusPreparing)
	for _, o := range []domain.Order{o1, o2, o3} {
		require.NoError(t, store.Save(ctx, &o))
	}

	all, err := store.List(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	preparing := domain.OrderStatusPreparing
	byStatus, err := store.List(ctx, OrderFilter{Status: &preparing})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byTable, err := store.List(ctx, OrderFilter{TableID: "table-1"})
	require.NoError(t, err)
	assert.Len(t, byTable, 2)

	both, err := store.List(ctx, OrderFilter{Status: &preparing, TableID: "table-1"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "o3", both[0].ID)
}

func TestMemoryOrderStore_NextOrderNumber_Sequence(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		number, err := store.NextOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ORD-%03d", i), number)
	}
}

func TestMemoryOrderStore_NextOrderNumber_ZeroPadding(t *testing.T) {
	store := NewMemoryOrderStore()
	ctx := context.Background()

	number, err := store.NextOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", number)
}
