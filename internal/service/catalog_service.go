package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrProductNameRequired = errors.New("product name is required")
	ErrNegativePrice       = errors.New("price must not be negative")
	ErrNegativeStock       = errors.New("stock must not be negative")
)

// ProductInput carries the writable product fields. Price is in integer
// currency units.
type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	ImageURL    string
	Featured    bool
}

// ListOptions narrows and pages a catalog listing.
type ListOptions struct {
	Featured  *bool
	Query     string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder repository.SortOrder
}

// CatalogService defines the interface for product catalog business logic.
type CatalogService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, opts ListOptions) ([]*domain.Product, int, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductNameRequired
	}
	if input.Price < 0 {
		return ErrNegativePrice
	}
	if input.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

func (s *catalogService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		Featured:    input.Featured,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.Featured = input.Featured
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *catalogService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// List returns a page of products. A search query takes precedence over
// the featured filter, matching how the storefront uses the two.
func (s *catalogService) List(ctx context.Context, opts ListOptions) ([]*domain.Product, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}

	if strings.TrimSpace(opts.Query) != "" {
		return s.productRepo.Search(ctx, opts.Query, opts.Page, opts.PageSize)
	}

	return s.productRepo.List(ctx, opts.Featured, opts.Page, opts.PageSize, opts.SortBy, opts.SortOrder)
}
