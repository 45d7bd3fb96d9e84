package utils

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitKeyPrefix = "bank_ledger_rate"

// LimiterStore is the shared counter store of every rate limiter, plus the
// redis client behind it when one is configured.
type LimiterStore struct {
	Store limiter.Store
	redis *redis.Client
}

// NewLimiterStore returns a redis backed store when redisURL is set, so that limits
// hold across instances, and an in-process store otherwise.
func NewLimiterStore(ctx context.Context, redisURL string, logger *slog.Logger) (*LimiterStore, error) {
	if redisURL == "" {
		logger.Info("Rate limiter using in-memory store")
		return &LimiterStore{Store: memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitKeyPrefix,
			CleanUpInterval: time.Minute,
		})}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitKeyPrefix})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}
	logger.Info("Rate limiter using redis store", slog.String("addr", opts.Addr))
	return &LimiterStore{Store: store, redis: client}, nil
}

// NewLimiter builds a limiter for a formatted rate such as "250-M". An empty rate disables the limit.
func (s *LimiterStore) NewLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formatted, err)
	}
	return limiter.New(s.Store, rate), nil
}

// Close releases the redis client, if any.
func (s *LimiterStore) Close() error {
	if s == nil || s.redis == nil {
		return nil
	}
	return s.redis.Close()
}
