package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("order item quantity must be at least 1")
	ErrInvalidPrice    = errors.New("order item price must not be negative")
	ErrInvalidTotal    = errors.New("order total must be positive")
)

// OrderLine is a submitted checkout line. Price is the unit price the
// client saw; it is recorded as a snapshot, not re-derived from the
// catalog at checkout time.
type OrderLine struct {
	ProductID uuid.UUID
	Qty       int
	Price     int64
}

// OrderService converts a validated cart into a durable order while
// protecting inventory consistency. The reservation and the sale are one
// indivisible unit.
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, lines []OrderLine, total int64) (*domain.Order, error)
	History(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	logger    *zap.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		logger:    logger,
	}
}

// Checkout validates the payload and hands it to the repository as a single
// transactional unit: stock checks, stock decrements, and the order insert
// either all land or none do. On success the user's server-side cart is
// emptied.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, lines []OrderLine, total int64) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if total <= 0 {
		return nil, ErrInvalidTotal
	}
	for _, line := range lines {
		if line.Qty < 1 {
			return nil, ErrInvalidQuantity
		}
		if line.Price < 0 {
			return nil, ErrInvalidPrice
		}
	}

	order := &domain.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Total:     total,
		CreatedAt: time.Now(),
	}
	for _, line := range lines {
		order.Items = append(order.Items, &domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Qty,
			Price:     line.Price,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, err
	}

	// The purchase supersedes the in-progress selection. A failed clear
	// leaves a stale cart, not an inconsistent order, so it only logs.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

// History returns the user's orders, newest first.
func (s *orderService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}
	return orders, nil
}

// ListAll returns every order for the admin console.
func (s *orderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Delete removes an order and its items. Stock stays where the sale left it.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}
