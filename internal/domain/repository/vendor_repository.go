// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bridge/internal/domain/entity"
	"bridge/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Domain-specific errors for vendor persistence.
var (
	// ErrVendorNotFound is returned when a vendor is not found.
	ErrVendorNotFound = errors.New("vendor not found")
)

// LocatedFilter narrows a candidate fetch for radius search.
// Only records with a location are ever returned.
type LocatedFilter struct {
	// Category, when set, keeps only records whose category equals it exactly.
	Category *string
	// Bound, when set, keeps only records inside the box. It must be a
	// superset of the search radius; the exact decision is made in memory.
	Bound *orb.Bound
}

// VendorRepository defines the interface for vendor-related database operations.
type VendorRepository interface {
	// CreateVendor persists a new vendor. A duplicate email yields domain ErrEmailAlreadyExists.
	CreateVendor(ctx context.Context, vendor *entity.Vendor) error

	// FindVendorByID retrieves a vendor by its unique ID.
	FindVendorByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// ExistsVendorByEmail reports whether a vendor already uses the email.
	ExistsVendorByEmail(ctx context.Context, email string) (bool, error)

	// UpdateVendor overwrites an existing vendor record, location included.
	UpdateVendor(ctx context.Context, vendor *entity.Vendor) error

	// DeleteVendor removes a vendor by its ID.
	DeleteVendor(ctx context.Context, id uuid.UUID) error

	// ListVendors returns every vendor ordered by creation time.
	ListVendors(ctx context.Context) ([]*entity.Vendor, error)

	// FindVendorsByCategory returns vendors whose category matches exactly.
	FindVendorsByCategory(ctx context.Context, category string) ([]*entity.Vendor, error)

	// FindLocatedVendors returns the proximity candidates: vendors with a location
	// that satisfy the filter.
	FindLocatedVendors(ctx context.Context, filter LocatedFilter) ([]*entity.Vendor, error)
}
