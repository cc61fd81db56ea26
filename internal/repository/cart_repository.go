package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	// ErrUnknownCartProduct is returned when a cart line references a
	// product that does not exist.
	ErrUnknownCartProduct = errors.New("cart item references unknown product")
)

// CartRepository defines the interface for cart data access. A user has at
// most one cart; Save replaces its items wholesale.
type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, items []*domain.CartItem) (*domain.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindByUserID retrieves the user's cart with its items and the referenced
// products joined in.
func (r *cartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.qty,
		       p.id, p.name, p.description, p.price, p.stock, p.image_url, p.featured, p.created_at, p.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
	`

	rows, err := r.db.QueryContext(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	cart.Items = []*domain.CartItem{}
	for rows.Next() {
		item := &domain.CartItem{Product: &domain.Product{}}
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Qty,
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
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return cart, nil
}

// Save replaces the user's cart contents in a single transaction: the cart
// row is created lazily on first save, all existing items are removed, and
// the submitted set is inserted. Saving the same set twice is idempotent.
func (r *cartRepository) Save(ctx context.Context, userID uuid.UUID, items []*domain.CartItem) (*domain.Cart, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var cartID uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`, uuid.New(), userID, now).Scan(&cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart items: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (id, cart_id, product_id, qty)
			VALUES ($1, $2, $3, $4)
		`, uuid.New(), cartID, item.ProductID, item.Qty)
		if err != nil {
			if isPgError(err, pgForeignKeyViolation) {
				return nil, ErrUnknownCartProduct
			}
			return nil, fmt.Errorf("failed to insert cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cart save: %w", err)
	}

	return r.FindByUserID(ctx, userID)
}

// Clear removes all items from the user's cart. A missing cart is not an
// error; there is simply nothing to clear.
func (r *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
