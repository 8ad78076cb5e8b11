package cache

import (
	"context"
	"errors"
	"testing"
	"time"
	"trailblazer-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepo is an in-memory ParkRepository that counts id lookups.
type countingRepo struct {
	parks   map[int64]*domain.Park
	lookups int
	// afterRead runs between reading a row and returning it.
	afterRead func()
}

func (r *countingRepo) FindByExternalCode(ctx context.Context, code string) (*domain.Park, error) {
	for _, p := range r.parks {
		if p.ExternalCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *countingRepo) FindByID(ctx context.Context, id int64) (*domain.Park, error) {
	r.lookups++
	p, ok := r.parks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	if r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return &cp, nil
}

func (r *countingRepo) Insert(ctx context.Context, p *domain.Park) (int64, error) {
	id := int64(len(r.parks) + 1)
	cp := *p
	cp.ID = id
	r.parks[id] = &cp
	return id, nil
}

func (r *countingRepo) Update(ctx context.Context, p *domain.Park) error {
	if _, ok := r.parks[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.parks[p.ID] = &cp
	return nil
}

func (r *countingRepo) List(ctx context.Context, offset, limit int) ([]*domain.Park, error) {
	return nil, nil
}

func (r *countingRepo) ListLocated(ctx context.Context) ([]*domain.Park, error) {
	return nil, nil
}

func newTestCache(t *testing.T) (*RedisParkCache, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := &countingRepo{parks: map[int64]*domain.Park{
		1: {ID: 1, ExternalCode: "afbg", Name: "African Burial Ground", Region: "NY",
			Location: &domain.Coordinates{Lat: 40.71452681, Lon: -74.00447358}},
	}}
	return NewRedisParkCache(repo, client, time.Minute), repo, mr
}

func TestRedisParkCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)

	first, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	second, err := c.FindByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lookups, "second lookup should be served from redis")
	assert.True(t, mr.Exists("park:1"))
	assert.Equal(t, time.Minute, mr.TTL("park:1"))
}

func TestRedisParkCacheUpdateRefreshesEntry(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)

	p, err := c.FindByID(ctx, 1)
	require.NoError(t, err)

	p.Name = "African Burial Ground National Monument"
	require.NoError(t, c.Update(ctx, p))
	assert.True(t, mr.Exists("park:1"))

	got, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "African Burial Ground National Monument", got.Name)
	assert.Equal(t, 1, repo.lookups)
}

func TestRedisParkCacheStaleMissDoesNotOverwriteUpdate(t *testing.T) {
	ctx := context.Background()
	c, repo, _ := newTestCache(t)

	// An update lands after the miss has read the old row but before it fills the cache.
	repo.afterRead = func() {
		updated := *repo.parks[1]
		updated.Name = "African Burial Ground National Monument"
		require.NoError(t, c.Update(ctx, &updated))
	}

	stale, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "African Burial Ground", stale.Name)

	got, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "African Burial Ground National Monument", got.Name)
	assert.Equal(t, 1, repo.lookups, "second lookup should hit the refreshed entry")
}

func TestRedisParkCacheMissIsNotCached(t *testing.T) {
	ctx := context.Background()
	c, _, mr := newTestCache(t)

	_, err := c.FindByID(ctx, 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, mr.Exists("park:42"))
}

func TestRedisParkCacheFallsThroughWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	c, repo, mr := newTestCache(t)
	mr.Close()

	p, err := c.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "afbg", p.ExternalCode)
	assert.Equal(t, 1, repo.lookups)
	assert.Error(t, c.Ping(ctx))
}
