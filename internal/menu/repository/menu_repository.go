package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brigade/internal/domain"
	"brigade/internal/errors"
)

type MySQLMenuRepository struct {
	db *sql.DB
}

func NewMySQLMenuRepository(db *sql.DB) *MySQLMenuRepository {
	return &MySQLMenuRepository{db: db}
}

func (r *MySQLMenuRepository) FindByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
		SELECT id, name, description, category, price, prepTimeMinutes, available,
		       createdAt, updatedAt
		FROM MenuItems
		WHERE id = ?
	`

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Category,
		&item.Price, &item.PrepTimeMinutes, &item.Available,
		&item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("menu item with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying menu item by id: %w", err)
	}

	return &item, nil
}

func (r *MySQLMenuRepository) List(ctx context.Context, availableOnly bool) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, description, category, price, prepTimeMinutes, available,
		       createdAt, updatedAt
		FROM MenuItems
	`
	if availableOnly {
		query += " WHERE available = 1"
	}
	query += " ORDER BY category, name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Category,
			&item.Price, &item.PrepTimeMinutes, &item.Available,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}

	return items, nil
}
