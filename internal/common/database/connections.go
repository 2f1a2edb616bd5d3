// internal/common/database/connections.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"career-workers/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

// Connections bundles the backing stores shared by every worker.
type Connections struct {
	DB     *sql.DB
	Redis  *redis.Client
	Search *elasticsearch.Client
}

// Open connects Postgres, Redis and Elasticsearch. Anything opened before a
// failure is closed again.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Connections, error) {
	db, err := OpenPostgres(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}

	rdb := NewRedis(cfg.Redis)
	if err := PingRedis(ctx, rdb); err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, err
	}

	es, err := NewElasticsearch(cfg.Elasticsearch)
	if err != nil {
		_ = db.Close()
		_ = rdb.Close()
		return nil, err
	}

	return &Connections{DB: db, Redis: rdb, Search: es}, nil
}

// Ready pings every store. Elasticsearch is optional and only checked when
// configured.
func (c *Connections) Ready(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := PingRedis(ctx, c.Redis); err != nil {
		return err
	}
	if c.Search != nil {
		if err := PingElasticsearch(ctx, c.Search); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connections) Close() error {
	var errs []error
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
