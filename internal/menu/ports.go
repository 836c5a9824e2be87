package menu

import (
	"context"

	"brigade/internal/domain"
)

type Service interface {
	ListMenu(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error)
}

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.MenuItem, error)
	List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error)
}
