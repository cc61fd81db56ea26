package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	productRepo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a product preserves all attributes", prop.ForAll(
		func(name string, description string, price int64, imageURL string, stock int, featured bool) bool {
			ctx := context.Background()

			// Create product with generated attributes
			product := &domain.Product{
				ID:          uuid.New(),
				Name:        name,
				Description: description,
				Price:       price,
				Stock:       stock,
				ImageURL:    imageURL,
				Featured:    featured,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			// Create the product
			err := productRepo.Create(ctx, product)
			if err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}

			// Retrieve the product
			retrieved, err := productRepo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			// Verify all attributes match
			if retrieved.ID != product.ID {
				t.Logf("FAIL: ID mismatch. Expected %s, got %s", product.ID, retrieved.ID)
				return false
			}

			if retrieved.Name != product.Name {
				t.Logf("FAIL: Name mismatch. Expected %s, got %s", product.Name, retrieved.Name)
				return false
			}

			if retrieved.Description != product.Description {
				t.Logf("FAIL: Description mismatch. Expected %s, got %s", product.Description, retrieved.Description)
				return false
			}

			// Prices are integer currency units, so equality is exact
			if retrieved.Price != product.Price {
				t.Logf("FAIL: Price mismatch. Expected %d, got %d", product.Price, retrieved.Price)
				return false
			}

			if retrieved.ImageURL != product.ImageURL {
				t.Logf("FAIL: ImageURL mismatch. Expected %s, got %s", product.ImageURL, retrieved.ImageURL)
				return false
			}

			if retrieved.Stock != product.Stock {
				t.Logf("FAIL: Stock mismatch. Expected %d, got %d", product.Stock, retrieved.Stock)
				return false
			}

			if retrieved.Featured != product.Featured {
				t.Logf("FAIL: Featured mismatch. Expected %t, got %t", product.Featured, retrieved.Featured)
				return false
			}

			// Verify timestamps are set
			if retrieved.CreatedAt.IsZero() {
				t.Logf("FAIL: CreatedAt is zero")
				return false
			}

			if retrieved.UpdatedAt.IsZero() {
				t.Logf("FAIL: UpdatedAt is zero")
				return false
			}

			// Cleanup
			_ = productRepo.Delete(ctx, product.ID)

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),                      // name
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`),                // description
		gen.Int64Range(1, 999999),                                 // price (positive values)
		gen.RegexMatch(`https?://[a-z0-9.-]+/[a-z0-9/._-]{1,50}`), // imageURL
		gen.IntRange(0, 1000),                                     // stock (non-negative)
		gen.Bool(),                                                // featured
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ProductUpdatesAreReflected(t *testing.T) {
	productRepo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("updating a product and retrieving it shows the updated values", prop.ForAll(
		func(name1 string, name2 string, description1 string, description2 string,
			price1 int64, price2 int64, stock1 int, stock2 int) bool {
			ctx := context.Background()

			// Create initial product
			product := &domain.Product{
				ID:          uuid.New(),
				Name:        name1,
				Description: description1,
				Price:       price1,
				Stock:       stock1,
				ImageURL:    "http://example.com/image1.jpg",
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			err := productRepo.Create(ctx, product)
			if err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}

			// Update the product with new values
			product.Name = name2
			product.Description = description2
			product.Price = price2
			product.Stock = stock2
			product.Featured = true
			product.UpdatedAt = time.Now()

			err = productRepo.Update(ctx, product)
			if err != nil {
				t.Logf("FAIL: Failed to update product: %v", err)
				return false
			}

			// Retrieve the product
			retrieved, err := productRepo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			// Verify updated values are reflected
			if retrieved.Name != name2 {
				t.Logf("FAIL: Name not updated. Expected %s, got %s", name2, retrieved.Name)
				return false
			}

			if retrieved.Description != description2 {
				t.Logf("FAIL: Description not updated. Expected %s, got %s", description2, retrieved.Description)
				return false
			}

			if retrieved.Price != price2 {
				t.Logf("FAIL: Price not updated. Expected %d, got %d", price2, retrieved.Price)
				return false
			}

			if retrieved.Stock != stock2 {
				t.Logf("FAIL: Stock not updated. Expected %d, got %d", stock2, retrieved.Stock)
				return false
			}

			if !retrieved.Featured {
				t.Logf("FAIL: Featured flag not updated")
				return false
			}

			// Cleanup
			_ = productRepo.Delete(ctx, product.ID)

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),       // name1
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),       // name2
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`), // description1
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`), // description2
		gen.Int64Range(1, 999999),                  // price1
		gen.Int64Range(1, 999999),                  // price2
		gen.IntRange(0, 1000),                      // stock1
		gen.IntRange(0, 1000),                      // stock2
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ProductDeletionRemovesFromCatalog(t *testing.T) {
	productRepo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("deleting a product makes it not retrievable", prop.ForAll(
		func(name string, description string, price int64, stock int) bool {
			ctx := context.Background()

			// Create product
			product := &domain.Product{
				ID:          uuid.New(),
				Name:        name,
				Description: description,
				Price:       price,
				Stock:       stock,
				ImageURL:    "http://example.com/image.jpg",
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			}

			err := productRepo.Create(ctx, product)
			if err != nil {
				t.Logf("FAIL: Failed to create product: %v", err)
				return false
			}

			// Verify product exists
			_, err = productRepo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Product should exist before deletion: %v", err)
				return false
			}

			// Delete the product
			err = productRepo.Delete(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Failed to delete product: %v", err)
				return false
			}

			// Attempt to retrieve the deleted product
			_, err = productRepo.FindByID(ctx, product.ID)
			if err != ErrProductNotFound {
				t.Logf("FAIL: Expected ErrProductNotFound after deletion, got: %v", err)
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),       // name
		gen.RegexMatch(`[A-Za-z0-9 .,!?]{10,200}`), // description
		gen.Int64Range(1, 999999),                  // price
		gen.IntRange(0, 1000),                      // stock
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductRepository_FeaturedFilterAndSearch(t *testing.T) {
	productRepo := NewProductRepository(testDB)
	ctx := context.Background()

	_, _ = testDB.Exec("DELETE FROM products WHERE name LIKE 'catalogtest-%'")

	mk := func(name string, featured bool) *domain.Product {
		p := &domain.Product{
			ID:        uuid.New(),
			Name:      name,
			Price:     1000,
			Stock:     5,
			Featured:  featured,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := productRepo.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
		return p
	}

	featured := mk("catalogtest-featured-lamp", true)
	plain := mk("catalogtest-plain-chair", false)

	yes := true
	got, total, err := productRepo.List(ctx, &yes, 1, 50, "created_at", SortOrderDesc)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, p := range got {
		if !p.Featured {
			t.Fatalf("featured filter returned non-featured product %s", p.Name)
		}
	}
	if total < 1 {
		t.Fatalf("expected at least one featured product, got %d", total)
	}

	results, _, err := productRepo.Search(ctx, "catalogtest-plain", 1, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != plain.ID {
		t.Fatalf("search did not return the expected product")
	}

	_ = productRepo.Delete(ctx, featured.ID)
	_ = productRepo.Delete(ctx, plain.ID)
}
