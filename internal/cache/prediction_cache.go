package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/config"
	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const predictionKeyPrefix = "flowpilot:predictions"

// PredictionCache stores catalog-wide restock predictions for a given
// inventory version. A new version never reads an older entry, so entries for
// superseded versions are left to expire.
type PredictionCache interface {
	GetPredictions(ctx context.Context, version uint64) ([]domain.RestockPrediction, bool, error)
	SetPredictions(ctx context.Context, version uint64, predictions []domain.RestockPrediction) error
	Close() error
}

// Store versions restart at zero with every process, so keys are scoped by
// an epoch drawn when the cache is created.
type redisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
	epoch  string
}

type noopPredictionCache struct{}

// NewPredictionCache returns a redis-backed cache when caching is enabled and
// a no-op cache otherwise.
func NewPredictionCache(cfg config.CacheConfig) (PredictionCache, error) {
	if !cfg.Enabled {
		return &noopPredictionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return NewRedisPredictionCache(client, ttl), nil
}

// NewRedisPredictionCache wraps an existing client.
func NewRedisPredictionCache(client *redis.Client, ttl time.Duration) PredictionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisPredictionCache{client: client, ttl: ttl, epoch: uuid.NewString()}
}

func NewNoopPredictionCache() PredictionCache {
	return &noopPredictionCache{}
}

func (c *redisPredictionCache) GetPredictions(ctx context.Context, version uint64) ([]domain.RestockPrediction, bool, error) {
	payload, err := c.client.Get(ctx, c.key(version)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var predictions []domain.RestockPrediction
	if err := json.Unmarshal(payload, &predictions); err != nil {
		return nil, false, fmt.Errorf("decode prediction cache: %w", err)
	}

	return predictions, true, nil
}

func (c *redisPredictionCache) SetPredictions(ctx context.Context, version uint64, predictions []domain.RestockPrediction) error {
	payload, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("encode prediction cache: %w", err)
	}

	if err := c.client.Set(ctx, c.key(version), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPredictionCache) Close() error {
	return c.client.Close()
}

func (n *noopPredictionCache) GetPredictions(ctx context.Context, version uint64) ([]domain.RestockPrediction, bool, error) {
	return nil, false, nil
}

func (n *noopPredictionCache) SetPredictions(ctx context.Context, version uint64, predictions []domain.RestockPrediction) error {
	return nil
}

func (n *noopPredictionCache) Close() error {
	return nil
}

func (c *redisPredictionCache) key(version uint64) string {
	return fmt.Sprintf("%s:%s:v%d", predictionKeyPrefix, c.epoch, version)
}
