package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bridge/config"
	"bridge/internal/domain/entity"
	"bridge/internal/domain/repository"
	"bridge/internal/domain/service"
	"bridge/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRatingCache struct {
	mock.Mock
}

func (m *mockRatingCache) Get(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, bool, error) {
	args := m.Called(ctx, productID)
	summary, _ := args.Get(0).(*entity.RatingSummary)

	return summary, args.Bool(1), args.Error(2)
}

func (m *mockRatingCache) Set(ctx context.Context, summary *entity.RatingSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *mockRatingCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	return m.Called(ctx, productID).Error(0)
}

// newMissingRatingCache never holds an entry and accepts every write.
func newMissingRatingCache(t *testing.T) *mockRatingCache {
	t.Helper()

	cache := &mockRatingCache{}
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Maybe()
	cache.On("Set", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache.On("Invalidate", mock.Anything, mock.Anything).Return(nil).Maybe()

	return cache
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishReviewEvent(ctx context.Context, event *service.ReviewEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

func newAcceptingPublisher(t *testing.T) *mockEventPublisher {
	t.Helper()

	publisher := &mockEventPublisher{}
	publisher.On("PublishReviewEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	return publisher
}

// mockReviewRepository lets a test script store races the in-memory store cannot produce.
type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) FindReviewByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *mockReviewRepository) FindReviewByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, userID, productID)
	review, _ := args.Get(0).(*entity.Review)

	return review, args.Error(1)
}

func (m *mockReviewRepository) UpdateReview(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepository) DeleteReviewsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewRepository) FindReviewsByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, productID)
	reviews, _ := args.Get(0).([]*entity.Review)

	return reviews, args.Error(1)
}

func (m *mockReviewRepository) FindReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, userID)
	reviews, _ := args.Get(0).([]*entity.Review)

	return reviews, args.Error(1)
}

func (m *mockReviewRepository) ListReviews(ctx context.Context) ([]*entity.Review, error) {
	args := m.Called(ctx)
	reviews, _ := args.Get(0).([]*entity.Review)

	return reviews, args.Error(1)
}

func (m *mockReviewRepository) SummarizeProductRatings(ctx context.Context, productID uuid.UUID) (entity.RatingSummary, error) {
	args := m.Called(ctx, productID)

	return args.Get(0).(entity.RatingSummary), args.Error(1)
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires every service against one in-memory store.
type testEnv struct {
	store     *memory.Store
	cfg       *config.Config
	cache     *mockRatingCache
	publisher *mockEventPublisher

	userRepo    repository.UserRepository
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()

	return &testEnv{
		store: store,
		cfg: &config.Config{
			Proximity: config.ProximityConfig{DefaultRadiusKm: 10, MaxRadiusKm: 500},
		},
		cache:       newMissingRatingCache(t),
		publisher:   newAcceptingPublisher(t),
		userRepo:    memory.NewUserRepository(store),
		vendorRepo:  memory.NewVendorRepository(store),
		productRepo: memory.NewProductRepository(store),
		reviewRepo:  memory.NewReviewRepository(store),
	}
}

func (env *testEnv) userService() *userService {
	return NewUserService(UserServiceParams{
		UserRepo:    env.userRepo,
		ReviewRepo:  env.reviewRepo,
		RatingCache: env.cache,
		Config:      env.cfg,
		Logger:      newDiscardLogger(),
	}).(*userService)
}

func (env *testEnv) vendorService(qr service.QRCodeService) *vendorService {
	return NewVendorService(VendorServiceParams{
		VendorRepo:  env.vendorRepo,
		ProductRepo: env.productRepo,
		RatingCache: env.cache,
		QRService:   qr,
		Config:      env.cfg,
		Logger:      newDiscardLogger(),
	}).(*vendorService)
}

func (env *testEnv) productService() *productService {
	return NewProductService(ProductServiceParams{
		TxManager:   memory.NewTransactionManager(env.store),
		ProductRepo: env.productRepo,
		VendorRepo:  env.vendorRepo,
		RatingCache: env.cache,
		Logger:      newDiscardLogger(),
	}).(*productService)
}

func (env *testEnv) reviewService() *reviewService {
	return NewReviewService(ReviewServiceParams{
		UserRepo:    env.userRepo,
		ProductRepo: env.productRepo,
		ReviewRepo:  env.reviewRepo,
		RatingCache: env.cache,
		Publisher:   env.publisher,
		Logger:      newDiscardLogger(),
	}).(*reviewService)
}

func (env *testEnv) seedUser(t *testing.T, email string, location *entity.Coordinate) *entity.User {
	t.Helper()

	user := &entity.User{ID: uuid.New(), Name: "user " + email, Email: email, Location: location}
	require.NoError(t, env.userRepo.CreateUser(context.Background(), user))

	return user
}

func (env *testEnv) seedVendor(t *testing.T, email, category string, location *entity.Coordinate) *entity.Vendor {
	t.Helper()

	vendor := &entity.Vendor{ID: uuid.New(), Name: "vendor " + email, Email: email, Category: category, Location: location}
	require.NoError(t, env.vendorRepo.CreateVendor(context.Background(), vendor))

	return vendor
}

func (env *testEnv) seedProduct(t *testing.T, vendorID uuid.UUID, name string, active bool) *entity.Product {
	t.Helper()

	product := &entity.Product{ID: uuid.New(), VendorID: vendorID, Name: name, Price: 9.5, Category: "food", IsActive: active}
	require.NoError(t, env.productRepo.CreateProduct(context.Background(), product))

	return product
}

func coord(lat, lng float64) *entity.Coordinate {
	return &entity.Coordinate{Latitude: lat, Longitude: lng}
}

func ptr[T any](v T) *T {
	return &v
}
