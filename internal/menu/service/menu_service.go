package service

import (
	"context"

	"brigade/internal/domain"
)

type Repository interface {
	List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error)
}

type MenuService struct {
	repo Repository
}

func NewService(repo Repository) *MenuService {
	return &MenuService{repo: repo}
}

func (s *MenuService) ListMenu(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	return s.repo.List(ctx, availableOnly)
}
