package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"brigade/internal/domain"
	"brigade/internal/errors"
)

type MemoryMenuRepository struct {
	mu        sync.RWMutex
	itemsByID map[string]domain.MenuItem
}

func NewMemoryMenuRepository(items ...domain.MenuItem) *MemoryMenuRepository {
	r := &MemoryMenuRepository{itemsByID: make(map[string]domain.MenuItem, len(items))}
	for _, item := range items {
		r.itemsByID[item.ID] = item
	}
	return r
}

func (r *MemoryMenuRepository) Put(item domain.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.itemsByID[item.ID] = item
}

func (r *MemoryMenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.itemsByID[id]
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item with id %s not found", id))
	}
	cp := item
	return &cp, nil
}

func (r *MemoryMenuRepository) List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.MenuItem, 0, len(r.itemsByID))
	for _, item := range r.itemsByID {
		if availableOnly && !item.Available {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category == out[j].Category {
			return out[i].Name < out[j].Name
		}
		return out[i].Category < out[j].Category
	})

	return out, nil
}
