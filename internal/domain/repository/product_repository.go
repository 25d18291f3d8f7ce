package repository

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter selects products for listing. Zero value lists everything.
type ProductFilter struct {
	VendorID   *uuid.UUID
	Category   *string
	ActiveOnly bool
	// Search matches name or description, case-insensitively, as a substring.
	Search *string
}

// ProductRepository defines the interface for product-related database operations.
type ProductRepository interface {
	// CreateProduct persists a new product. An unknown vendor yields domain ErrInvalidReference.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product by its unique ID.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// UpdateProduct overwrites an existing product record.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// SetProductsActiveByVendor flips IsActive on every product of a vendor
	// and returns the number of rows touched.
	SetProductsActiveByVendor(ctx context.Context, vendorID uuid.UUID, active bool) (int64, error)

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ListProducts returns the products matching filter, newest first.
	ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
