package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TradeCraft/internal/model"
)

var _ Cache = (*RedisCache)(nil)

// DefaultTTL bounds how long a last-good snapshot survives without refresh.
const DefaultTTL = 12 * time.Hour

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger.Named("cache")}
}

// Ping checks the connection to the Redis server.
func (c *RedisCache) Ping(ctx context.Context) string {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Sprintf("down: %v", err)
	}
	return "up"
}

func (c *RedisCache) key(symbol string) string {
	return fmt.Sprintf("snapshot:%s", symbol)
}

// Put stores the snapshot as JSON under snapshot:{symbol}.
func (c *RedisCache) Put(ctx context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key(snap.Symbol), data, c.ttl).Err(); err != nil {
		c.logger.Error("failed to cache snapshot", zap.String("symbol", snap.Symbol), zap.Error(err))
		return err
	}
	return nil
}

// Get returns the cached snapshot or ErrMiss.
func (c *RedisCache) Get(ctx context.Context, symbol string) (*model.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
