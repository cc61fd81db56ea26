package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         "user",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(testDB).Create(context.Background(), user))

	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

func createTestProduct(t *testing.T, name string, price int64, stock int) *domain.Product {
	t.Helper()

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, NewProductRepository(testDB).Create(context.Background(), product))

	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM products WHERE id = $1", product.ID)
	})
	return product
}

func TestCartRepository_SaveReplacesItems(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-save@example.com")
	lamp := createTestProduct(t, "carttest lamp", 2500, 10)
	chair := createTestProduct(t, "carttest chair", 9900, 4)

	// First save creates the cart lazily
	cart, err := repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: lamp.ID, Qty: 2},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, lamp.ID, cart.Items[0].ProductID)
	require.Equal(t, 2, cart.Items[0].Qty)
	require.NotNil(t, cart.Items[0].Product)
	require.Equal(t, lamp.Name, cart.Items[0].Product.Name)

	// Second save replaces the items wholesale
	cart, err = repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: chair.ID, Qty: 1},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, chair.ID, cart.Items[0].ProductID)

	// Saving the same set twice leaves the same item set
	again, err := repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: chair.ID, Qty: 1},
	})
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	require.Equal(t, cart.ID, again.ID)
}

func TestCartRepository_SaveRejectsUnknownProduct(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-unknown@example.com")
	lamp := createTestProduct(t, "carttest ghost lamp", 2500, 10)

	// A prior valid cart should survive a failed save
	_, err := repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: lamp.ID, Qty: 1},
	})
	require.NoError(t, err)

	_, err = repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: uuid.New(), Qty: 1},
	})
	require.ErrorIs(t, err, ErrUnknownCartProduct)

	// The transaction rolled back, so the old items are still there
	cart, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, lamp.ID, cart.Items[0].ProductID)
}

func TestCartRepository_FindMissingCart(t *testing.T) {
	repo := NewCartRepository(testDB)

	_, err := repo.FindByUserID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartRepository_Clear(t *testing.T) {
	repo := NewCartRepository(testDB)
	ctx := context.Background()

	user := createTestUser(t, "cart-clear@example.com")
	lamp := createTestProduct(t, "carttest clear lamp", 2500, 10)

	_, err := repo.Save(ctx, user.ID, []*domain.CartItem{
		{ProductID: lamp.ID, Qty: 3},
	})
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, user.ID))

	cart, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// Clearing a user with no cart is a no-op
	require.NoError(t, repo.Clear(ctx, uuid.New()))
}
