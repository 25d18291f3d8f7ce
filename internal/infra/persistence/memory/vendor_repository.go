package memory

import (
	"context"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"

	"github.com/google/uuid"
)

type vendorRepository struct {
	access access
}

// NewVendorRepository returns a VendorRepository backed by store.
func NewVendorRepository(store *Store) repository.VendorRepository {
	return &vendorRepository{access: access{store: store}}
}

func (repo *vendorRepository) CreateVendor(_ context.Context, vendor *entity.Vendor) error {
	return repo.access.write(func(st *state) error {
		if _, ok := st.vendors[vendor.ID]; ok {
			return domainerrors.NewDatabaseExecuteError(errDuplicateID, "failed to create vendor")
		}
		for _, existing := range st.vendors {
			if existing.Email == vendor.Email {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("vendor email already registered")
			}
		}

		now := repo.access.store.timestamp()
		if vendor.CreatedAt.IsZero() {
			vendor.CreatedAt = now
		}
		vendor.UpdatedAt = now

		st.vendors[vendor.ID] = cloneVendor(vendor)
		repo.access.store.vendorGrid.Put(vendor.ID, vendor.Location)

		return nil
	})
}

func (repo *vendorRepository) FindVendorByID(_ context.Context, id uuid.UUID) (*entity.Vendor, error) {
	var found *entity.Vendor
	err := repo.access.read(func(st *state) error {
		v, ok := st.vendors[id]
		if !ok {
			return repository.ErrVendorNotFound
		}
		found = cloneVendor(v)

		return nil
	})

	return found, err
}

func (repo *vendorRepository) ExistsVendorByEmail(_ context.Context, email string) (bool, error) {
	var exists bool
	err := repo.access.read(func(st *state) error {
		for _, v := range st.vendors {
			if v.Email == email {
				exists = true

				break
			}
		}

		return nil
	})

	return exists, err
}

func (repo *vendorRepository) UpdateVendor(_ context.Context, vendor *entity.Vendor) error {
	return repo.access.write(func(st *state) error {
		current, ok := st.vendors[vendor.ID]
		if !ok {
			return repository.ErrVendorNotFound
		}
		for id, other := range st.vendors {
			if id != vendor.ID && other.Email == vendor.Email {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("vendor email already registered")
			}
		}

		vendor.CreatedAt = current.CreatedAt
		vendor.UpdatedAt = repo.access.store.timestamp()

		st.vendors[vendor.ID] = cloneVendor(vendor)
		repo.access.store.vendorGrid.Put(vendor.ID, vendor.Location)

		return nil
	})
}

// DeleteVendor removes the vendor with its products and their reviews.
func (repo *vendorRepository) DeleteVendor(_ context.Context, id uuid.UUID) error {
	return repo.access.write(func(st *state) error {
		if _, ok := st.vendors[id]; !ok {
			return repository.ErrVendorNotFound
		}
		delete(st.vendors, id)
		repo.access.store.vendorGrid.Remove(id)

		for productID, p := range st.products {
			if p.VendorID == id {
				st.removeProduct(productID)
			}
		}

		return nil
	})
}

func (repo *vendorRepository) ListVendors(_ context.Context) ([]*entity.Vendor, error) {
	var vendors []*entity.Vendor
	err := repo.access.read(func(st *state) error {
		vendors = sortedValues(st.vendors, nil, compareVendors, cloneVendor)

		return nil
	})

	return vendors, err
}

func (repo *vendorRepository) FindVendorsByCategory(_ context.Context, category string) ([]*entity.Vendor, error) {
	var vendors []*entity.Vendor
	err := repo.access.read(func(st *state) error {
		vendors = sortedValues(st.vendors, func(v *entity.Vendor) bool { return v.Category == category }, compareVendors, cloneVendor)

		return nil
	})

	return vendors, err
}

func (repo *vendorRepository) FindLocatedVendors(_ context.Context, filter repository.LocatedFilter) ([]*entity.Vendor, error) {
	keep := func(v *entity.Vendor) bool {
		return v.Location != nil && (filter.Category == nil || v.Category == *filter.Category)
	}

	vendors := []*entity.Vendor{}
	err := repo.access.read(func(st *state) error {
		if filter.Bound == nil {
			vendors = sortedValues(st.vendors, keep, compareVendors, cloneVendor)

			return nil
		}

		for _, id := range repo.access.store.vendorGrid.Within(*filter.Bound) {
			if v, ok := st.vendors[id]; ok && keep(v) {
				vendors = append(vendors, cloneVendor(v))
			}
		}

		return nil
	})

	return vendors, err
}

func compareVendors(a, b *entity.Vendor) int {
	return oldestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}
