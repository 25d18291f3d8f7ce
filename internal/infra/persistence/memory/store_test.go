package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/geo"
	"bridge/internal/domain/repository"
	"bridge/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taipei = entity.Coordinate{Latitude: 25.0330, Longitude: 121.5654}

type fixture struct {
	store    *Store
	users    repository.UserRepository
	vendors  repository.VendorRepository
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	tx       repository.TransactionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var tick atomic.Int64
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time {
		return base.Add(time.Duration(tick.Add(1)) * time.Second)
	}))

	return &fixture{
		store:    store,
		users:    NewUserRepository(store),
		vendors:  NewVendorRepository(store),
		products: NewProductRepository(store),
		reviews:  NewReviewRepository(store),
		tx:       NewTransactionManager(store),
	}
}

func (f *fixture) vendor(t *testing.T, category string, loc *entity.Coordinate) *entity.Vendor {
	t.Helper()

	v := &entity.Vendor{ID: uuid.New(), Name: "v", Email: uuid.NewString() + "@bridge.test", Category: category, Location: loc}
	require.NoError(t, f.vendors.CreateVendor(context.Background(), v))

	return v
}

func (f *fixture) user(t *testing.T, loc *entity.Coordinate) *entity.User {
	t.Helper()

	u := &entity.User{ID: uuid.New(), Name: "u", Email: uuid.NewString() + "@bridge.test", Location: loc}
	require.NoError(t, f.users.CreateUser(context.Background(), u))

	return u
}

func (f *fixture) product(t *testing.T, vendorID uuid.UUID, name string, active bool) *entity.Product {
	t.Helper()

	p := &entity.Product{ID: uuid.New(), VendorID: vendorID, Name: name, IsActive: active, Category: "food"}
	require.NoError(t, f.products.CreateProduct(context.Background(), p))

	return p
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := f.user(t, nil)
	assert.False(t, u.CreatedAt.IsZero())

	dup := &entity.User{ID: uuid.New(), Email: u.Email}
	assert.ErrorIs(t, f.users.CreateUser(ctx, dup), domainerrors.ErrEmailAlreadyExists)

	exists, err := f.users.ExistsUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	u.Name = "renamed"
	u.Location = taipei.Ptr()
	require.NoError(t, f.users.UpdateUser(ctx, u))

	got, err := f.users.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, taipei, *got.Location)

	got.Location.Latitude = 0
	again, err := f.users.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, taipei, *again.Location, "returned values are copies")

	require.NoError(t, f.users.DeleteUser(ctx, u.ID))
	_, err = f.users.FindUserByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.ErrorIs(t, f.users.DeleteUser(ctx, u.ID), repository.ErrUserNotFound)
}

func TestVendorRepository_FindLocatedVendors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	near := f.vendor(t, "food", &entity.Coordinate{Latitude: 25.04, Longitude: 121.56})
	nearDrinks := f.vendor(t, "drinks", &entity.Coordinate{Latitude: 25.03, Longitude: 121.57})
	far := f.vendor(t, "food", &entity.Coordinate{Latitude: 22.99, Longitude: 120.21})
	f.vendor(t, "food", nil)

	all, err := f.vendors.FindLocatedVendors(ctx, repository.LocatedFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bound, ok := geo.BoundAround(taipei, 5)
	require.True(t, ok)
	inBox, err := f.vendors.FindLocatedVendors(ctx, repository.LocatedFilter{Bound: &bound})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{near.ID, nearDrinks.ID}, vendorIDs(inBox))

	food := "food"
	foodInBox, err := f.vendors.FindLocatedVendors(ctx, repository.LocatedFilter{Bound: &bound, Category: &food})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{near.ID}, vendorIDs(foodInBox))

	// Moving a vendor moves it in the index too.
	far.Location = &entity.Coordinate{Latitude: 25.035, Longitude: 121.565}
	require.NoError(t, f.vendors.UpdateVendor(ctx, far))
	foodInBox, err = f.vendors.FindLocatedVendors(ctx, repository.LocatedFilter{Bound: &bound, Category: &food})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{near.ID, far.ID}, vendorIDs(foodInBox))
}

func vendorIDs(vendors []*entity.Vendor) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(vendors))
	for _, v := range vendors {
		ids = append(ids, v.ID)
	}

	return ids
}

func TestUserRepository_FindLocatedUsersIgnoresCategoryFilter(t *testing.T) {
	f := newFixture(t)
	f.user(t, taipei.Ptr())

	category := "food"
	users, err := f.users.FindLocatedUsers(context.Background(), repository.LocatedFilter{Category: &category})
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestProductRepository_ListProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v := f.vendor(t, "food", nil)
	other := f.vendor(t, "food", nil)
	first := f.product(t, v.ID, "Bubble Tea", true)
	second := f.product(t, v.ID, "Beef Noodles", false)
	third := f.product(t, other.ID, "Iced TEA", true)

	all, err := f.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{third.ID, second.ID, first.ID}, productIDs(all), "newest first")

	active, err := f.products.ListProducts(ctx, repository.ProductFilter{ActiveOnly: true, VendorID: &v.ID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, productIDs(active))

	search := "tea"
	found, err := f.products.ListProducts(ctx, repository.ProductFilter{ActiveOnly: true, Search: &search})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{third.ID, first.ID}, productIDs(found))

	touched, err := f.products.SetProductsActiveByVendor(ctx, v.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, touched)

	missing := &entity.Product{ID: uuid.New(), VendorID: uuid.New(), Name: "x"}
	assert.ErrorIs(t, f.products.CreateProduct(ctx, missing), domainerrors.ErrInvalidReference)
}

func productIDs(products []*entity.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	return ids
}

func TestReviewRepository_UniquePairAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v := f.vendor(t, "food", nil)
	p := f.product(t, v.ID, "Dumplings", true)
	u1 := f.user(t, nil)
	u2 := f.user(t, nil)

	summary, err := f.reviews.SummarizeProductRatings(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.Count)

	r1 := &entity.Review{ID: uuid.New(), UserID: u1.ID, ProductID: p.ID, Rating: 5}
	require.NoError(t, f.reviews.CreateReview(ctx, r1))
	r2 := &entity.Review{ID: uuid.New(), UserID: u2.ID, ProductID: p.ID, Rating: 2}
	require.NoError(t, f.reviews.CreateReview(ctx, r2))

	dup := &entity.Review{ID: uuid.New(), UserID: u1.ID, ProductID: p.ID, Rating: 1}
	assert.ErrorIs(t, f.reviews.CreateReview(ctx, dup), repository.ErrReviewAlreadyExists)

	summary, err = f.reviews.SummarizeProductRatings(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, summary.Average, 1e-9)
	assert.EqualValues(t, 2, summary.Count)

	byProduct, err := f.reviews.FindReviewsByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byProduct, 2)
	assert.Equal(t, r2.ID, byProduct[0].ID, "newest first")

	r1.Rating = 3
	r1.UserID = uuid.New()
	require.NoError(t, f.reviews.UpdateReview(ctx, r1))
	stored, err := f.reviews.FindReviewByUserAndProduct(ctx, u1.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Rating)
	assert.Equal(t, u1.ID, stored.UserID, "identity fields never change")

	require.NoError(t, f.reviews.DeleteReview(ctx, r1.ID))
	require.NoError(t, f.reviews.CreateReview(ctx, dup), "pair is free again after delete")
}

func TestReviewRepository_ConcurrentCreateKeepsOneReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v := f.vendor(t, "food", nil)
	p := f.product(t, v.ID, "Dumplings", true)
	u := f.user(t, nil)

	const writers = 32
	var created atomic.Int32
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.reviews.CreateReview(ctx, &entity.Review{ID: uuid.New(), UserID: u.ID, ProductID: p.ID, Rating: i%5 + 1})
			if err == nil {
				created.Add(1)
			} else {
				assert.ErrorIs(t, err, repository.ErrReviewAlreadyExists)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, created.Load())
	reviews, err := f.reviews.FindReviewsByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v := f.vendor(t, "food", nil)
	p := f.product(t, v.ID, "Dumplings", true)
	u := f.user(t, nil)
	require.NoError(t, f.reviews.CreateReview(ctx, &entity.Review{ID: uuid.New(), UserID: u.ID, ProductID: p.ID, Rating: 4}))

	require.NoError(t, f.vendors.DeleteVendor(ctx, v.ID))

	_, err := f.products.FindProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	reviews, err := f.reviews.FindReviewsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	v := f.vendor(t, "food", taipei.Ptr())
	p := f.product(t, v.ID, "Dumplings", true)
	boom := errors.New("boom")

	err := f.tx.Execute(ctx, func(factory repository.RepositoryFactory) error {
		require.NoError(t, factory.NewProductRepository().DeleteProduct(ctx, p.ID))
		require.NoError(t, factory.NewVendorRepository().DeleteVendor(ctx, v.ID))

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = f.products.FindProductByID(ctx, p.ID)
	require.NoError(t, err)

	bound, ok := geo.BoundAround(taipei, 1)
	require.True(t, ok)
	located, err := f.vendors.FindLocatedVendors(ctx, repository.LocatedFilter{Bound: &bound})
	require.NoError(t, err)
	assert.Len(t, located, 1, "spatial index restored with the data")

	err = f.tx.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewProductRepository().DeleteProduct(ctx, p.ID)
	})
	require.NoError(t, err)
	_, err = f.products.FindProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
