package usecase

import (
	"context"

	"bridge/internal/domain/entity"

	"github.com/google/uuid"
)

// AddProductInput holds the fields of a new product.
type AddProductInput struct {
	VendorID    uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	IsActive    bool
}

// ProductUsecase defines catalogue operations. Public listings only show
// active products; ListAllProducts is the admin view.
type ProductUsecase interface {
	AddProduct(ctx context.Context, input *AddProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListActiveProducts(ctx context.Context) ([]*entity.Product, error)
	ListProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	SearchProducts(ctx context.Context, term string) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch entity.ProductPatch) (*entity.Product, error)
	// DeleteProduct removes the product and its reviews atomically.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ActivateProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ActivateProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error)
	ListAllProducts(ctx context.Context) ([]*entity.Product, error)
}
