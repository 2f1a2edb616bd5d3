// internal/catalog/repository.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/recommendation"

	"github.com/redis/go-redis/v9"
)

const (
	SnapshotKey     = "career:catalog:snapshot"
	careerKeyPrefix = "career:"
)

// Source is the system of record behind the cache.
type Source interface {
	LoadAll(ctx context.Context) ([]recommendation.Career, error)
	Get(ctx context.Context, id string) (*recommendation.Career, error)
}

// Repository serves the catalog cache-aside through Redis. Cache failures
// are logged and fall through to the source; only source failures reach the
// caller. Every call returns freshly decoded values, so callers own what they
// get.
type Repository struct {
	source Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRepository(source Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Repository {
	return &Repository{source: source, redis: rdb, ttl: ttl, logger: log}
}

func CareerKey(id string) string {
	return careerKeyPrefix + id
}

// Snapshot returns the whole catalog in catalog order.
func (r *Repository) Snapshot(ctx context.Context) ([]recommendation.Career, error) {
	var careers []recommendation.Career
	if r.fromCache(ctx, SnapshotKey, &careers) {
		return careers, nil
	}

	careers, err := r.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	r.toCache(ctx, SnapshotKey, careers)

	fresh := make([]recommendation.Career, len(careers))
	copy(fresh, careers)
	return fresh, nil
}

// Career returns one catalog entry by id.
func (r *Repository) Career(ctx context.Context, id string) (*recommendation.Career, error) {
	var c recommendation.Career
	if r.fromCache(ctx, CareerKey(id), &c) {
		return &c, nil
	}

	found, err := r.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.toCache(ctx, CareerKey(id), found)
	return found, nil
}

// Invalidate drops the snapshot and the given per-career entries.
func (r *Repository) Invalidate(ctx context.Context, ids ...string) error {
	keys := []string{SnapshotKey}
	for _, id := range ids {
		keys = append(keys, CareerKey(id))
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}

func (r *Repository) fromCache(ctx context.Context, key string, dst interface{}) bool {
	raw, err := r.redis.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.CatalogCache.WithLabelValues(metrics.CacheMiss).Inc()
		return false
	case err != nil:
		metrics.CatalogCache.WithLabelValues(metrics.CacheError).Inc()
		r.logger.Warn("catalog cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CatalogCache.WithLabelValues(metrics.CacheCorrupt).Inc()
		r.logger.Warn("corrupt catalog cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	metrics.CatalogCache.WithLabelValues(metrics.CacheHit).Inc()
	return true
}

func (r *Repository) toCache(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("catalog cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
