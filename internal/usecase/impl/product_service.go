package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	deliverycontext "bridge/internal/delivery/context"
	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"
	"bridge/internal/domain/service"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	ratingCache service.RatingCache
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	VendorRepo  repository.VendorRepository
	RatingCache service.RatingCache
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		vendorRepo:  params.VendorRepo,
		ratingCache: params.RatingCache,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return domainerrors.ErrValidationFailed.WithDetails("price must be a non-negative number")
	}

	return nil
}

func (srv *productService) AddProduct(ctx context.Context, input *usecase.AddProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	if _, err := srv.vendorRepo.FindVendorByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}

	product := &entity.Product{
		ID:          uuid.New(),
		VendorID:    input.VendorID,
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		IsActive:    input.IsActive,
	}
	if err := srv.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product added",
		slog.String("product_id", product.ID.String()),
		slog.String("vendor_id", product.VendorID.String()),
	)

	return product, nil
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *productService) list(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) ListActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	return srv.list(ctx, repository.ProductFilter{ActiveOnly: true})
}

// ListProductsByVendor shows a vendor's whole catalogue, inactive items included.
func (srv *productService) ListProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	return srv.list(ctx, repository.ProductFilter{VendorID: &vendorID})
}

func (srv *productService) ListProductsByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return srv.list(ctx, repository.ProductFilter{ActiveOnly: true, Category: &category})
}

// SearchProducts matches active products by name or description, ignoring case.
// An empty term lists every active product.
func (srv *productService) SearchProducts(ctx context.Context, term string) ([]*entity.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return srv.ListActiveProducts(ctx)
	}

	return srv.list(ctx, repository.ProductFilter{ActiveOnly: true, Search: &term})
}

func (srv *productService) ListAllProducts(ctx context.Context) ([]*entity.Product, error) {
	return srv.list(ctx, repository.ProductFilter{})
}

func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch entity.ProductPatch) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(product)
	if strings.TrimSpace(product.Name) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
	}
	if err := validatePrice(product.Price); err != nil {
		return nil, err
	}

	if err := srv.saveProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *productService) saveProduct(ctx context.Context, product *entity.Product) error {
	if err := srv.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes the reviews and the product in one transaction.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	var removedReviews int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		reviewRepo := repoFactory.NewReviewRepository()

		if _, err := productRepo.FindProductByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		removed, err := reviewRepo.DeleteReviewsByProduct(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete product reviews")
		}
		removedReviews = removed

		if err := productRepo.DeleteProduct(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return err
	}

	invalidateRating(ctx, srv.log(ctx), srv.ratingCache, id)
	srv.log(ctx).Info("Product deleted",
		slog.String("product_id", id.String()),
		slog.Int64("reviews_removed", removedReviews),
	)

	return nil
}

func (srv *productService) ActivateProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsActive {
		return product, nil
	}

	product.IsActive = true
	if err := srv.saveProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *productService) ActivateProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	if _, err := srv.vendorRepo.FindVendorByID(ctx, vendorID); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}

	touched, err := srv.productRepo.SetProductsActiveByVendor(ctx, vendorID, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to activate vendor products")
	}

	srv.log(ctx).Info("Vendor products activated",
		slog.String("vendor_id", vendorID.String()),
		slog.Int64("products", touched),
	)

	return srv.ListProductsByVendor(ctx, vendorID)
}
