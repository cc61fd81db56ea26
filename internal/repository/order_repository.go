package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// InsufficientStockError reports the line that could not be fulfilled.
// When it is returned, nothing of the attempted order was persisted.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID.String()
	}
	return "insufficient stock for product: " + name
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// CreateWithItems persists the order, its items, and the matching
	// stock decrements as one transaction. Either everything lands or
	// nothing does.
	CreateWithItems(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithItems runs the checkout write path. Each line's stock decrement
// is guarded (stock >= qty in the WHERE clause), so two concurrent checkouts
// against the same product serialize on the row and the loser aborts; the
// surrounding transaction ties the decrements to the order's existence.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, item := range order.Items {
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $2
			WHERE id = $1 AND stock >= $2
		`, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			// Either the product is gone or its stock is short;
			// both abort the whole order.
			stockErr := &InsufficientStockError{ProductID: item.ProductID}
			_ = tx.QueryRowContext(ctx,
				`SELECT name FROM products WHERE id = $1`,
				item.ProductID,
			).Scan(&stockErr.ProductName)
			return stockErr
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total, created_at)
		VALUES ($1, $2, $3, $4)
	`, order.ID, order.UserID, order.Total, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, order.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// FindByID retrieves a single order with its items.
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// ListByUser retrieves a user's order history, newest first, items included.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListAll retrieves every order with its user, newest first. Admin view.
func (r *orderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.created_at,
		       u.id, u.email, u.first_name, u.last_name, u.role, u.created_at, u.updated_at
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{User: &domain.User{}}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Total,
			&order.CreatedAt,
			&order.User.ID,
			&order.User.Email,
			&order.User.FirstName,
			&order.User.LastName,
			&order.User.Role,
			&order.User.CreatedAt,
			&order.User.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// Delete removes an order; its items go with it via ON DELETE CASCADE.
// Stock is deliberately not restored.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// loadItems attaches items (with joined products) to the given orders.
func (r *orderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		order.Items = []*domain.OrderItem{}

		rows, err := r.db.QueryContext(ctx, `
			SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			       p.id, p.name, p.description, p.price, p.stock, p.image_url, p.featured, p.created_at, p.updated_at
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = $1
		`, order.ID)
		if err != nil {
			return fmt.Errorf("failed to load order items: %w", err)
		}

		for rows.Next() {
			item := &domain.OrderItem{Product: &domain.Product{}}
			err := rows.Scan(
				&item.ID,
				&item.OrderID,
				&item.ProductID,
				&item.Quantity,
				&item.Price,
				&item.Product.ID,
				&item.Product.Name,
				&item.Product.Description,
				&item.Product.Price,
				&item.Product.Stock,
				&item.Product.ImageURL,
				&item.Product.Featured,
				&item.Product.CreatedAt,
				&item.Product.UpdatedAt,
			)
			if err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}

		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("error iterating order items: %w", err)
		}
		rows.Close()
	}

	return nil
}
