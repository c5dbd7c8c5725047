package cache

import (
	"context"
	"errors"
	"sync"

	"TradeCraft/internal/model"
)

// ErrMiss is returned when no snapshot is cached for a symbol.
var ErrMiss = errors.New("cache miss")

// Cache keeps the last successfully collected snapshot per symbol.
type Cache interface {
	Put(ctx context.Context, snap *model.Snapshot) error
	Get(ctx context.Context, symbol string) (*model.Snapshot, error)
	Ping(ctx context.Context) string
}

// MemoryCache is an in-process Cache used when Redis is not configured.
type MemoryCache struct {
	mu    sync.RWMutex
	snaps map[string]model.Snapshot
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{snaps: make(map[string]model.Snapshot)}
}

func (c *MemoryCache) Put(_ context.Context, snap *model.Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	c.mu.Lock()
	c.snaps[snap.Symbol] = *snap
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Get(_ context.Context, symbol string) (*model.Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.snaps[symbol]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	return &snap, nil
}

func (c *MemoryCache) Ping(context.Context) string { return "up" }
