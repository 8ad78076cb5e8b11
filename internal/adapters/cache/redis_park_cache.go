package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/platform/metrics"
	"trailblazer-service/internal/platform/obs"
	"trailblazer-service/internal/ports"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisParkCache decorates a ParkRepository with a read-through Redis cache
// for id lookups.
//
// Updates made through the cache overwrite the entry with the new row. Misses
// fill the entry with SETNX, so a reader holding a row fetched before a
// concurrent update cannot replace the updated entry. Writes that bypass the
// cache, such as dbtool seeding, become visible once the entry's TTL expires.
//
// Redis failures never fail a call: reads fall through to the repository
// and write errors are only logged.
type RedisParkCache struct {
	ports.ParkRepository
	client *redis.Client
	ttl    time.Duration
}

func NewRedisParkCache(next ports.ParkRepository, client *redis.Client, ttl time.Duration) *RedisParkCache {
	return &RedisParkCache{ParkRepository: next, client: client, ttl: ttl}
}

func parkKey(id int64) string { return "park:" + strconv.FormatInt(id, 10) }

func (c *RedisParkCache) FindByID(ctx context.Context, id int64) (_ *domain.Park, err error) {
	defer obs.Time(ctx, "park.cache.FindByID")(&err)

	key := parkKey(id)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p domain.Park
		if decErr := json.Unmarshal(raw, &p); decErr == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &p, nil
		}
		logging.L().Warn().Str("key", key).Msg("park cache entry undecodable, refetching")
	case errors.Is(err, redis.Nil):
	default:
		logging.L().Warn().Err(err).Str("key", key).Msg("park cache read failed")
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	p, err := c.ParkRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, encErr := json.Marshal(p); encErr == nil {
		if setErr := c.client.SetNX(ctx, key, b, c.ttl).Err(); setErr != nil {
			logging.L().Warn().Err(setErr).Str("key", key).Msg("park cache write failed")
		}
	}

	return p, nil
}

func (c *RedisParkCache) Update(ctx context.Context, park *domain.Park) error {
	if err := c.ParkRepository.Update(ctx, park); err != nil {
		return err
	}

	key := parkKey(park.ID)
	b, err := json.Marshal(park)
	if err == nil {
		err = c.client.Set(ctx, key, b, c.ttl).Err()
	}
	if err != nil {
		logging.L().Warn().Err(err).Int64("park_id", park.ID).Msg("park cache refresh failed, evicting")
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			logging.L().Warn().Err(delErr).Int64("park_id", park.ID).Msg("park cache eviction failed")
		}
	}
	return nil
}

// Ping verifies the Redis connection at startup.
func (c *RedisParkCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("park cache: ping redis: %w", err)
	}
	return nil
}
