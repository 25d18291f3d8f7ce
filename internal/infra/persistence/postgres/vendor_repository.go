package postgres

import (
	"context"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"
	"bridge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// vendorRepository implements the repository.VendorRepository interface.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

// CreateVendor persists a new vendor.
func (repo *vendorRepository) CreateVendor(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(vendorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("vendor email already registered")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid vendor data")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vendor")
	}

	vendor.CreatedAt = vendorM.CreatedAt
	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// FindVendorByID retrieves a vendor by its unique ID.
func (repo *vendorRepository) FindVendorByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	var vendorM model.VendorModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by ID")
	}

	return toVendorDomain(&vendorM), nil
}

// ExistsVendorByEmail reports whether the email is taken.
func (repo *vendorRepository) ExistsVendorByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.VendorModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check vendor email")
	}

	return count > 0, nil
}

// UpdateVendor overwrites every mutable column of a vendor.
func (repo *vendorRepository) UpdateVendor(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	result := repo.db.WithContext(ctx).
		Model(vendorM).
		Where("id = ?", vendor.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(vendorM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("vendor email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update vendor")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// DeleteVendor removes a vendor by ID. Its products go with it through the
// foreign key cascade.
func (repo *vendorRepository) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.VendorModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete vendor")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// ListVendors returns every vendor, oldest first.
func (repo *vendorRepository) ListVendors(ctx context.Context) ([]*entity.Vendor, error) {
	var vendorModels []*model.VendorModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&vendorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	return toVendorDomains(vendorModels), nil
}

// FindVendorsByCategory returns vendors of exactly one category.
func (repo *vendorRepository) FindVendorsByCategory(ctx context.Context, category string) ([]*entity.Vendor, error) {
	var vendorModels []*model.VendorModel
	err := repo.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at ASC").
		Find(&vendorModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find vendors by category")
	}

	return toVendorDomains(vendorModels), nil
}

// FindLocatedVendors returns the located vendors matching the filter.
func (repo *vendorRepository) FindLocatedVendors(ctx context.Context, filter repository.LocatedFilter) ([]*entity.Vendor, error) {
	query := scopeLocated(repo.db.WithContext(ctx), filter.Bound)
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var vendorModels []*model.VendorModel
	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find located vendors")
	}

	return toVendorDomains(vendorModels), nil
}

// --- Mapper Functions ---

// toVendorDomain converts a GORM VendorModel to a domain Vendor entity.
func toVendorDomain(data *model.VendorModel) *entity.Vendor {
	if data == nil {
		return nil
	}

	return &entity.Vendor{
		ID:          data.ID,
		Name:        data.Name,
		Email:       data.Email,
		Category:    data.Category,
		Description: data.Description,
		Phone:       data.Phone,
		Address:     data.Address,
		Location:    data.LocationColumns.Coordinate(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toVendorDomains(data []*model.VendorModel) []*entity.Vendor {
	vendors := make([]*entity.Vendor, 0, len(data))
	for _, vendorM := range data {
		vendors = append(vendors, toVendorDomain(vendorM))
	}

	return vendors
}

// fromVendorDomain converts a domain Vendor entity to a GORM VendorModel.
func fromVendorDomain(data *entity.Vendor) *model.VendorModel {
	if data == nil {
		return nil
	}

	return &model.VendorModel{
		ID:              data.ID,
		Name:            data.Name,
		Email:           data.Email,
		Category:        data.Category,
		Description:     data.Description,
		Phone:           data.Phone,
		Address:         data.Address,
		LocationColumns: model.NewLocationColumns(data.Location),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
