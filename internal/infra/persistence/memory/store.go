// Package memory is an in-process implementation of the persistence layer.
// It honours the same contracts as the postgres repositories (unique emails,
// one review per user and product, cascading deletes) and backs the
// "memory" storage driver and the use case tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"bridge/internal/domain/entity"
	"bridge/internal/domain/geo"
	"bridge/internal/domain/repository"
	"bridge/internal/errors"

	"github.com/google/uuid"
)

var errDuplicateID = errors.New("duplicate primary key")

type reviewKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

// state is everything a transaction may need to roll back.
type state struct {
	users       map[uuid.UUID]*entity.User
	vendors     map[uuid.UUID]*entity.Vendor
	products    map[uuid.UUID]*entity.Product
	reviews     map[uuid.UUID]*entity.Review
	reviewPairs map[reviewKey]uuid.UUID
}

func newState() *state {
	return &state{
		users:       make(map[uuid.UUID]*entity.User),
		vendors:     make(map[uuid.UUID]*entity.Vendor),
		products:    make(map[uuid.UUID]*entity.Product),
		reviews:     make(map[uuid.UUID]*entity.Review),
		reviewPairs: make(map[reviewKey]uuid.UUID),
	}
}

// snapshot copies the maps. Stored entities are never mutated in place, so
// sharing the pointers is safe.
func (st *state) snapshot() *state {
	return &state{
		users:       maps.Clone(st.users),
		vendors:     maps.Clone(st.vendors),
		products:    maps.Clone(st.products),
		reviews:     maps.Clone(st.reviews),
		reviewPairs: maps.Clone(st.reviewPairs),
	}
}

// Store owns the data. Repositories are views over it.
type Store struct {
	mu         sync.RWMutex
	st         *state
	userGrid   *geo.GridIndex
	vendorGrid *geo.GridIndex
	cellSizeKm float64
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithGridCellSize sets the spatial index cell size in kilometers.
func WithGridCellSize(km float64) Option {
	return func(s *Store) {
		s.cellSizeKm = km
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		st:         newState(),
		cellSizeKm: 1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.userGrid = geo.NewGridIndex(s.cellSizeKm)
	s.vendorGrid = geo.NewGridIndex(s.cellSizeKm)

	return s
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) rebuildIndexes() {
	s.userGrid = geo.NewGridIndex(s.cellSizeKm)
	for id, u := range s.st.users {
		s.userGrid.Put(id, u.Location)
	}
	s.vendorGrid = geo.NewGridIndex(s.cellSizeKm)
	for id, v := range s.st.vendors {
		s.vendorGrid.Put(id, v.Location)
	}
}

// access is how a repository reaches the store. Inside a transaction the
// write lock is already held for the whole callback.
type access struct {
	store *Store
	inTx  bool
}

func (a access) read(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.RLock()
		defer a.store.mu.RUnlock()
	}

	return fn(a.store.st)
}

func (a access) write(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}

	return fn(a.store.st)
}

func (st *state) removeReview(id uuid.UUID) bool {
	r, ok := st.reviews[id]
	if !ok {
		return false
	}
	delete(st.reviews, id)
	delete(st.reviewPairs, reviewKey{userID: r.UserID, productID: r.ProductID})

	return true
}

func (st *state) removeProduct(id uuid.UUID) bool {
	if _, ok := st.products[id]; !ok {
		return false
	}
	delete(st.products, id)
	for reviewID, r := range st.reviews {
		if r.ProductID == id {
			st.removeReview(reviewID)
		}
	}

	return true
}

// --- Transactions ---

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager that serializes
// transactions and restores the previous state when the callback fails.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	access access
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{access: f.access}
}

func (f *repositoryFactory) NewVendorRepository() repository.VendorRepository {
	return &vendorRepository{access: f.access}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{access: f.access}
}

func (f *repositoryFactory) NewReviewRepository() repository.ReviewRepository {
	return &reviewRepository{access: f.access}
}

// Execute runs fn while holding the store's write lock.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := tm.store
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.st.snapshot()
	restore := func() {
		s.st = saved
		s.rebuildIndexes()
	}

	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{access: access{store: s, inTx: true}}); err != nil {
		restore()

		return err
	}

	return nil
}

// --- Helpers ---

func cloneCoordinate(c *entity.Coordinate) *entity.Coordinate {
	if c == nil {
		return nil
	}
	cp := *c

	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Location = cloneCoordinate(u.Location)

	return &cp
}

func cloneVendor(v *entity.Vendor) *entity.Vendor {
	cp := *v
	cp.Location = cloneCoordinate(v.Location)

	return &cp
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p

	return &cp
}

func cloneReview(r *entity.Review) *entity.Review {
	cp := *r

	return &cp
}

// oldestFirst orders by creation time, then ID for a stable result.
func oldestFirst(aTime, bTime time.Time, aID, bID uuid.UUID) int {
	if c := aTime.Compare(bTime); c != 0 {
		return c
	}

	return strings.Compare(aID.String(), bID.String())
}

// newestFirst orders by creation time descending, then ID ascending.
func newestFirst(aTime, bTime time.Time, aID, bID uuid.UUID) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}

	return strings.Compare(aID.String(), bID.String())
}

func sortedValues[T any](m map[uuid.UUID]*T, keep func(*T) bool, cmp func(a, b *T) int, clone func(*T) *T) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, clone(v))
		}
	}
	slices.SortFunc(out, cmp)

	return out
}
