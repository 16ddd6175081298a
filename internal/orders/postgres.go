package orders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lifecafe/order-service/internal/domain"
)

// PostgresStore persists orders in the orders/order_items tables.
// Options are stored as encoded JSON text in options_json; decoding
// back to a structured map happens in domain.OptionMap.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, table_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, order.ID, order.TableNumber, order.Status, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New().String()
		item.OrderID = order.ID
		item.CreatedAt = order.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, item_name, item_slug, options_json, price, quantity, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, item.ID, item.OrderID, item.Name, item.Slug, item.Options, item.Price, item.Quantity, item.Notes, item.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, table_number, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.TableNumber, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, item_name, item_slug, options_json, price, quantity, notes, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	query := `
		SELECT id, table_number, status, created_at, updated_at
		FROM orders
	`
	var conds []string
	var args []any
	if filter.TableNumber > 0 {
		args = append(args, filter.TableNumber)
		conds = append(conds, fmt.Sprintf("table_number = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.TableNumber, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, item_name, item_slug, options_json, price, quantity, notes, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		order := orderMap[item.OrderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, updatedAt, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// DeleteOrder removes the order row; items go with it through the
// ON DELETE CASCADE constraint.
func (s *PostgresStore) DeleteOrder(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM orders WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func scanItem(rows *sql.Rows) (domain.OrderItem, error) {
	var item domain.OrderItem
	var price sql.NullFloat64
	var notes sql.NullString

	err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Slug, &item.Options, &price, &item.Quantity, &notes, &item.CreatedAt)
	if err != nil {
		return item, err
	}

	if price.Valid {
		item.Price = &price.Float64
	}
	if notes.Valid {
		item.Notes = &notes.String
	}
	return item, nil
}
