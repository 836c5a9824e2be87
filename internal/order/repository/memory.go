package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"brigade/internal/domain"
	"brigade/internal/errors"
)

// MemoryOrderStore is an in-memory order store used by tests and by
// memory-backed runs. Each operation is individually guarded; the
// read-modify-write cycle across operations is not, matching the store
// contract.
type MemoryOrderStore struct {
	mu         sync.RWMutex
	ordersByID map[string]domain.Order
	nextNumber int64
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{
		ordersByID: make(map[string]domain.Order),
		nextNumber: 1,
	}
}

func (m *MemoryOrderStore) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Order, 0, len(m.ordersByID))
	for _, o := range m.ordersByID {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.TableID != "" && o.TableID != f.TableID {
			continue
		}
		out = append(out, copyOrder(o))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Number < out[j].Number
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (m *MemoryOrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.ordersByID[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (m *MemoryOrderStore) Save(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ordersByID[order.ID] = copyOrder(*order)
	return nil
}

func (m *MemoryOrderStore) NextOrderNumber(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.nextNumber
	m.nextNumber++
	return fmt.Sprintf("ORD-%03d", n), nil
}

// copyOrder clones the order including its item slice so callers never
// share backing arrays with the store.
func copyOrder(o domain.Order) domain.Order {
	cp := o
	cp.Items = make([]domain.OrderLineItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		cp.CompletedAt = &t
	}
	for i := range cp.Items {
		if cp.Items[i].PreparedAt != nil {
			t := *cp.Items[i].PreparedAt
			cp.Items[i].PreparedAt = &t
		}
	}
	return cp
}
