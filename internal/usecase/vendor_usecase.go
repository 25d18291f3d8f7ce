package usecase

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/domain/geo"

	"github.com/google/uuid"
)

// RegisterVendorInput holds the fields of a new vendor.
type RegisterVendorInput struct {
	Name        string
	Email       string
	Category    string
	Description string
	Phone       string
	Address     string
	Location    *entity.Coordinate
}

// VendorUsecase defines vendor profile and proximity operations.
type VendorUsecase interface {
	RegisterVendor(ctx context.Context, input *RegisterVendorInput) (*entity.Vendor, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, patch entity.VendorPatch) (*entity.Vendor, error)
	// UpdateVendorLocation is the only way a vendor's coordinate changes.
	UpdateVendorLocation(ctx context.Context, id uuid.UUID, location entity.Coordinate) (*entity.Vendor, error)
	DeleteVendor(ctx context.Context, id uuid.UUID) error
	ListVendors(ctx context.Context) ([]*entity.Vendor, error)
	ListVendorsByCategory(ctx context.Context, category string) ([]*entity.Vendor, error)
	FindNearbyVendors(ctx context.Context, input NearbyInput) ([]geo.Match[*entity.Vendor], error)
	// VendorShareQR renders a PNG QR code linking to the vendor's profile.
	VendorShareQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}
