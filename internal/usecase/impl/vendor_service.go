package impl

import (
	"context"
	"log/slog"
	"strings"

	"bridge/config"
	deliverycontext "bridge/internal/delivery/context"
	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/geo"
	"bridge/internal/domain/repository"
	"bridge/internal/domain/service"
	"bridge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	vendorRepo  repository.VendorRepository
	qrService   service.QRCodeService
	productRepo repository.ProductRepository
	ratingCache service.RatingCache
	radius      radiusPolicy
	logger      *slog.Logger
}

// VendorServiceParams holds dependencies for VendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	VendorRepo  repository.VendorRepository
	ProductRepo repository.ProductRepository
	RatingCache service.RatingCache
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		vendorRepo:  params.VendorRepo,
		qrService:   params.QRService,
		productRepo: params.ProductRepo,
		ratingCache: params.RatingCache,
		radius:      newRadiusPolicy(params.Config),
		logger:      params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *vendorService) RegisterVendor(ctx context.Context, input *usecase.RegisterVendorInput) (*entity.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and email are required")
	}
	if input.Location != nil {
		if err := input.Location.Validate(); err != nil {
			return nil, err
		}
	}

	exists, err := srv.vendorRepo.ExistsVendorByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check vendor email")
	}
	if exists {
		return nil, domainerrors.ErrEmailAlreadyExists
	}

	vendor := &entity.Vendor{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Category:    input.Category,
		Description: input.Description,
		Phone:       input.Phone,
		Address:     input.Address,
		Location:    cloneLocation(input.Location),
	}
	if err := srv.vendorRepo.CreateVendor(ctx, vendor); err != nil {
		return nil, errors.Wrap(err, "failed to create vendor")
	}

	srv.log(ctx).Info("Vendor registered",
		slog.String("vendor_id", vendor.ID.String()),
		slog.String("category", vendor.Category),
	)

	return vendor, nil
}

func (srv *vendorService) GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindVendorByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor")
	}

	return vendor, nil
}

func (srv *vendorService) UpdateVendor(ctx context.Context, id uuid.UUID, patch entity.VendorPatch) (*entity.Vendor, error) {
	vendor, err := srv.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	previousEmail := vendor.Email
	patch.Apply(vendor)
	if strings.TrimSpace(vendor.Name) == "" || strings.TrimSpace(vendor.Email) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and email cannot be empty")
	}

	if vendor.Email != previousEmail {
		exists, err := srv.vendorRepo.ExistsVendorByEmail(ctx, vendor.Email)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check vendor email")
		}
		if exists {
			return nil, domainerrors.ErrEmailAlreadyExists
		}
	}

	if err := srv.saveVendor(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (srv *vendorService) UpdateVendorLocation(ctx context.Context, id uuid.UUID, location entity.Coordinate) (*entity.Vendor, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	vendor, err := srv.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor.Location = location.Ptr()
	if err := srv.saveVendor(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (srv *vendorService) saveVendor(ctx context.Context, vendor *entity.Vendor) error {
	if err := srv.vendorRepo.UpdateVendor(ctx, vendor); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domainerrors.ErrVendorNotFound
		}

		return errors.Wrap(err, "failed to update vendor")
	}

	return nil
}

// DeleteVendor removes the vendor. Its products and their reviews go with it,
// so the cached summaries of those products are dropped as well.
func (srv *vendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	products, err := srv.productRepo.ListProducts(ctx, repository.ProductFilter{VendorID: &id})
	if err != nil {
		return errors.Wrap(err, "failed to list vendor products")
	}

	if err := srv.vendorRepo.DeleteVendor(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return domainerrors.ErrVendorNotFound
		}

		return errors.Wrap(err, "failed to delete vendor")
	}

	for _, product := range products {
		invalidateRating(ctx, srv.log(ctx), srv.ratingCache, product.ID)
	}

	srv.log(ctx).Info("Vendor deleted",
		slog.String("vendor_id", id.String()),
		slog.Int("product_count", len(products)),
	)

	return nil
}

func (srv *vendorService) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	vendors, err := srv.vendorRepo.ListVendors(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	return vendors, nil
}

func (srv *vendorService) ListVendorsByCategory(ctx context.Context, category string) ([]*entity.Vendor, error) {
	vendors, err := srv.vendorRepo.FindVendorsByCategory(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find vendors by category")
	}

	return vendors, nil
}

func (srv *vendorService) FindNearbyVendors(ctx context.Context, input usecase.NearbyInput) ([]geo.Match[*entity.Vendor], error) {
	query, filter, err := buildNearbySearch(input, srv.radius)
	if err != nil {
		return nil, err
	}

	candidates, err := srv.vendorRepo.FindLocatedVendors(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find located vendors")
	}

	matches := geo.Filter(candidates, query)
	srv.log(ctx).Debug("Nearby vendor search",
		slog.Float64("radius_km", query.RadiusKm),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(matches)),
	)

	return matches, nil
}

func (srv *vendorService) VendorShareQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.GetVendor(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateVendorQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate vendor QR code")
	}

	return png, nil
}
