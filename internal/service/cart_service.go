package service

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidCartQty = errors.New("cart item qty must be at least 1")

// CartLine is a single submitted cart entry.
type CartLine struct {
	ProductID uuid.UUID
	Qty       int
}

// CartService owns the server-side cart aggregate. Clients treat their own
// copy as an optimistic cache; the saved cart returned here is the truth.
type CartService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, lines []CartLine) (*domain.Cart, error)
}

type cartService struct {
	cartRepo repository.CartRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository) CartService {
	return &cartService{cartRepo: cartRepo}
}

// Get returns the user's cart. A user who has never saved one gets an
// empty cart rather than a not-found error.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrCartNotFound {
			return &domain.Cart{UserID: userID, Items: []*domain.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// Save replaces the cart contents. Last write wins; saving the same lines
// twice leaves the same item set.
func (s *cartService) Save(ctx context.Context, userID uuid.UUID, lines []CartLine) (*domain.Cart, error) {
	items := make([]*domain.CartItem, 0, len(lines))
	for _, line := range lines {
		if line.Qty < 1 {
			return nil, ErrInvalidCartQty
		}
		items = append(items, &domain.CartItem{
			ProductID: line.ProductID,
			Qty:       line.Qty,
		})
	}

	return s.cartRepo.Save(ctx, userID, items)
}
