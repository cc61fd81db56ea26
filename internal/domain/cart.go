package domain

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the server-owned in-progress selection for a user.
// There is at most one cart per user; saving replaces its items wholesale.
type Cart struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	UserID    uuid.UUID   `json:"user_id" db:"user_id"`
	Items     []*CartItem `json:"items"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// CartItem is a single line in a cart. Qty is always >= 1.
type CartItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Qty       int       `json:"qty" db:"qty"`
	Product   *Product  `json:"product,omitempty"`
}
