package memory

import (
	"context"
	"strings"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	access access
}

// NewProductRepository returns a ProductRepository backed by store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{access: access{store: store}}
}

func (repo *productRepository) CreateProduct(_ context.Context, product *entity.Product) error {
	return repo.access.write(func(st *state) error {
		if _, ok := st.vendors[product.VendorID]; !ok {
			return domainerrors.ErrInvalidReference.WrapMessage("vendor does not exist")
		}
		if _, ok := st.products[product.ID]; ok {
			return domainerrors.NewDatabaseExecuteError(errDuplicateID, "failed to create product")
		}

		now := repo.access.store.timestamp()
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now
		}
		product.UpdatedAt = now
		st.products[product.ID] = cloneProduct(product)

		return nil
	})
}

func (repo *productRepository) FindProductByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var found *entity.Product
	err := repo.access.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		found = cloneProduct(p)

		return nil
	})

	return found, err
}

func (repo *productRepository) UpdateProduct(_ context.Context, product *entity.Product) error {
	return repo.access.write(func(st *state) error {
		current, ok := st.products[product.ID]
		if !ok {
			return repository.ErrProductNotFound
		}

		product.VendorID = current.VendorID
		product.CreatedAt = current.CreatedAt
		product.UpdatedAt = repo.access.store.timestamp()
		st.products[product.ID] = cloneProduct(product)

		return nil
	})
}

func (repo *productRepository) SetProductsActiveByVendor(_ context.Context, vendorID uuid.UUID, active bool) (int64, error) {
	var touched int64
	err := repo.access.write(func(st *state) error {
		now := repo.access.store.timestamp()
		for id, p := range st.products {
			if p.VendorID != vendorID {
				continue
			}
			updated := cloneProduct(p)
			updated.IsActive = active
			updated.UpdatedAt = now
			st.products[id] = updated
			touched++
		}

		return nil
	})

	return touched, err
}

func (repo *productRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	return repo.access.write(func(st *state) error {
		if !st.removeProduct(id) {
			return repository.ErrProductNotFound
		}

		return nil
	})
}

func (repo *productRepository) ListProducts(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var search string
	if filter.Search != nil {
		search = strings.ToLower(*filter.Search)
	}

	keep := func(p *entity.Product) bool {
		switch {
		case filter.VendorID != nil && p.VendorID != *filter.VendorID:
			return false
		case filter.Category != nil && p.Category != *filter.Category:
			return false
		case filter.ActiveOnly && !p.IsActive:
			return false
		case filter.Search != nil:
			return strings.Contains(strings.ToLower(p.Name), search) ||
				strings.Contains(strings.ToLower(p.Description), search)
		}

		return true
	}

	var products []*entity.Product
	err := repo.access.read(func(st *state) error {
		products = sortedValues(st.products, keep, func(a, b *entity.Product) int {
			return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		}, cloneProduct)

		return nil
	})

	return products, err
}
