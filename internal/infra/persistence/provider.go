// Package persistence selects the repository implementations for the
// configured storage driver.
package persistence

import (
	"log/slog"

	"bridge/config"
	"bridge/internal/domain/repository"
	"bridge/internal/errors"
	"bridge/internal/infra/persistence/memory"
	"bridge/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params holds dependencies for the repositories, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the full repository set handed to the use cases.
type Repositories struct {
	fx.Out

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	VendorRepo  repository.VendorRepository
	ProductRepo repository.ProductRepository
	ReviewRepo  repository.ReviewRepository
}

// New builds the repositories for storage.driver.
func New(params Params) (Repositories, error) {
	switch driver := params.Config.Storage.Driver; driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return newMemoryRepositories(params.Config), nil
	case config.StorageDriverPostgres, "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			TxManager:   postgres.NewTransactionManager(db),
			UserRepo:    postgres.NewUserRepository(db),
			VendorRepo:  postgres.NewVendorRepository(db),
			ProductRepo: postgres.NewProductRepository(db),
			ReviewRepo:  postgres.NewReviewRepository(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unknown storage driver %q", driver)
	}
}

func newMemoryRepositories(cfg *config.Config) Repositories {
	var opts []memory.Option
	if cfg.Proximity.GridCellSizeKm > 0 {
		opts = append(opts, memory.WithGridCellSize(cfg.Proximity.GridCellSizeKm))
	}
	store := memory.NewStore(opts...)

	return Repositories{
		TxManager:   memory.NewTransactionManager(store),
		UserRepo:    memory.NewUserRepository(store),
		VendorRepo:  memory.NewVendorRepository(store),
		ProductRepo: memory.NewProductRepository(store),
		ReviewRepo:  memory.NewReviewRepository(store),
	}
}

// Module provides the repositories.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
