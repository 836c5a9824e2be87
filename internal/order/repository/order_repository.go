package repository

import (
	"context"
	"database/sql"
	"fmt"

	"brigade/internal/domain"
	"brigade/internal/errors"
)

// OrderFilter narrows List results. Zero values match everything.
type OrderFilter struct {
	Status  *domain.OrderStatus
	TableID string
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	query := `
		SELECT id, number, tableId, status, subtotal, tax, discount, total,
		       customerName, customerCount, specialRequests, createdBy,
		       createdAt, updatedAt, completedAt
		FROM Orders
		WHERE 1 = 1
	`
	args := []interface{}{}

	if f.Status != nil {
		query += " AND status = ?"
		args = append(args, string(*f.Status))
	}
	if f.TableID != "" {
		query += " AND tableId = ?"
		args = append(args, f.TableID)
	}
	query += " ORDER BY createdAt"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	for i := range orders {
		items, err := r.findItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, number, tableId, status, subtotal, tax, discount, total,
		       customerName, customerCount, specialRequests, createdBy,
		       createdAt, updatedAt, completedAt
		FROM Orders
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	items, err := r.findItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// Save writes the whole order back: the order row is upserted and the
// item rows are fully replaced. No field-level merging.
func (r *MySQLOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO Orders (id, number, tableId, status, subtotal, tax, discount, total,
		                    customerName, customerCount, specialRequests, createdBy,
		                    createdAt, updatedAt, completedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			number = VALUES(number), tableId = VALUES(tableId), status = VALUES(status),
			subtotal = VALUES(subtotal), tax = VALUES(tax), discount = VALUES(discount),
			total = VALUES(total), customerName = VALUES(customerName),
			customerCount = VALUES(customerCount), specialRequests = VALUES(specialRequests),
			createdBy = VALUES(createdBy), createdAt = VALUES(createdAt),
			updatedAt = VALUES(updatedAt), completedAt = VALUES(completedAt)
	`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID, order.Number, order.TableID, string(order.Status),
		order.Subtotal, order.Tax, order.Discount, order.Total,
		order.CustomerName, order.CustomerCount, order.SpecialRequests, order.CreatedBy,
		order.CreatedAt, order.UpdatedAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("saving order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM OrderItems WHERE orderId = ?`, order.ID)
	if err != nil {
		return fmt.Errorf("clearing order items: %w", err)
	}

	itemQuery := `
		INSERT INTO OrderItems (id, orderId, menuItemId, name, price, prepTimeMinutes,
		                        quantity, status, specialInstructions, preparedBy, preparedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, order.ID, item.MenuItemID, item.Name, item.Price, item.PrepTimeMinutes,
			item.Quantity, string(item.Status), item.SpecialInstructions, item.PreparedBy, item.PreparedAt,
		)
		if err != nil {
			return fmt.Errorf("saving order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order save: %w", err)
	}

	return nil
}

// NextOrderNumber increments the shared order counter atomically and
// returns it formatted as ORD-NNN.
func (r *MySQLOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	query := `
		INSERT INTO OrderCounters (name, value) VALUES ('orders', LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE value = LAST_INSERT_ID(value + 1)
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("incrementing order counter: %w", err)
	}

	n, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("reading order counter: %w", err)
	}

	return fmt.Sprintf("ORD-%03d", n), nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.OrderLineItem, error) {
	query := `
		SELECT id, menuItemId, name, price, prepTimeMinutes, quantity,
		       status, specialInstructions, preparedBy, preparedAt
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderLineItem
	for rows.Next() {
		var item domain.OrderLineItem
		var status string
		var preparedAt sql.NullTime
		err := rows.Scan(
			&item.ID, &item.MenuItemID, &item.Name, &item.Price, &item.PrepTimeMinutes,
			&item.Quantity, &status, &item.SpecialInstructions, &item.PreparedBy, &preparedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		item.Status = domain.ItemStatus(status)
		if preparedAt.Valid {
			t := preparedAt.Time
			item.PreparedAt = &t
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var completedAt sql.NullTime

	err := row.Scan(
		&order.ID, &order.Number, &order.TableID, &status,
		&order.Subtotal, &order.Tax, &order.Discount, &order.Total,
		&order.CustomerName, &order.CustomerCount, &order.SpecialRequests, &order.CreatedBy,
		&order.CreatedAt, &order.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		order.CompletedAt = &t
	}

	return &order, nil
}
