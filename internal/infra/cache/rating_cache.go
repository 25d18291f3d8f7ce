// Package cache implements the rating summary cache on Redis.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"bridge/config"
	"bridge/internal/domain/entity"
	"bridge/internal/domain/lifecycle"
	"bridge/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	keyPrefix  = "bridge:rating:"
	fieldAvg   = "average"
	fieldCount = "count"
)

type redisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRatingCache stores summaries as hashes that expire after ttl.
func NewRedisRatingCache(client *redis.Client, ttl time.Duration) service.RatingCache {
	return &redisRatingCache{client: client, ttl: ttl}
}

func ratingKey(productID uuid.UUID) string {
	return keyPrefix + productID.String()
}

func (c *redisRatingCache) Get(ctx context.Context, productID uuid.UUID) (*entity.RatingSummary, bool, error) {
	values, err := c.client.HGetAll(ctx, ratingKey(productID)).Result()
	if err != nil {
		return nil, false, errors.Wrap(err, "redis HGETALL rating summary")
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	average, err := strconv.ParseFloat(values[fieldAvg], 64)
	if err != nil {
		return nil, false, errors.Wrap(err, "corrupt cached average")
	}
	count, err := strconv.ParseInt(values[fieldCount], 10, 64)
	if err != nil {
		return nil, false, errors.Wrap(err, "corrupt cached count")
	}

	return &entity.RatingSummary{ProductID: productID, Average: average, Count: count}, true, nil
}

func (c *redisRatingCache) Set(ctx context.Context, summary *entity.RatingSummary) error {
	key := ratingKey(summary.ProductID)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldAvg, strconv.FormatFloat(summary.Average, 'g', -1, 64),
			fieldCount, strconv.FormatInt(summary.Count, 10),
		)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}

		return nil
	})

	return errors.Wrap(err, "redis store rating summary")
}

func (c *redisRatingCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	return errors.Wrap(c.client.Del(ctx, ratingKey(productID)).Err(), "redis DEL rating summary")
}

// noopRatingCache always misses.
type noopRatingCache struct{}

// NewNoopRatingCache returns a cache that stores nothing.
func NewNoopRatingCache() service.RatingCache {
	return noopRatingCache{}
}

func (noopRatingCache) Get(context.Context, uuid.UUID) (*entity.RatingSummary, bool, error) {
	return nil, false, nil
}

func (noopRatingCache) Set(context.Context, *entity.RatingSummary) error {
	return nil
}

func (noopRatingCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

// Params holds dependencies for the rating cache, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New builds the configured cache. Without a redis address it returns the no-op cache.
func New(params Params) service.RatingCache {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, rating summaries are not cached")

		return NewNoopRatingCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}
			params.Logger.InfoContext(ctx, "Redis rating cache connected", slog.String("addr", cfg.Addr))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisRatingCache(client, cfg.RatingTTL)
}

// Module provides the rating cache.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
