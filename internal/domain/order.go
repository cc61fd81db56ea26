package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is a completed checkout. Total is the sum of line price times
// quantity at creation time and is never recomputed afterwards.
type Order struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	UserID    uuid.UUID    `json:"user_id" db:"user_id"`
	Total     int64        `json:"total" db:"total"`
	Items     []*OrderItem `json:"items"`
	User      *User        `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// OrderItem is a single order line. Price is a snapshot of the unit price
// at purchase time, decoupled from later catalog price changes.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     int64     `json:"price" db:"price"`
	Product   *Product  `json:"product,omitempty"`
}
