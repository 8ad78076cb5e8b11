package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trailblazer-service/internal/adapters/cache"
	"trailblazer-service/internal/adapters/repositories"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/platform/db"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Store bundles the park repository with the connections behind it.
type Store struct {
	Repo  ports.ParkRepository
	DB    *sql.DB
	redis *redis.Client
}

// OpenStore connects to the configured database, makes sure the schema
// exists and, when Redis is configured, puts the park cache in front of
// the repository.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	conn, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	if err := repositories.InitSchema(ctx, conn, cfg.Database.Driver); err != nil {
		conn.Close()
		return nil, err
	}

	repo, err := repositories.NewParkRepository(conn, cfg.Database.Driver)
	if err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{Repo: repo, DB: conn}
	if cfg.Redis.Addr == "" {
		return s, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cached := cache.NewRedisParkCache(repo, client, cfg.Redis.TTL)
	if err := cached.Ping(ctx); err != nil {
		client.Close()
		conn.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logging.L().Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("park cache enabled")

	s.Repo = cached
	s.redis = client
	return s, nil
}

func (s *Store) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	errs = append(errs, s.DB.Close())
	return errors.Join(errs...)
}
