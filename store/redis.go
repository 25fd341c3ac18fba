package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "location:"

// Redis keeps one JSON document per vehicle under location:<uuid>. No TTL:
// the sink holds current state, not a cache.
type Redis struct {
	client *redis.Client
}

func OpenRedis(ctx context.Context, cfg Config) (*Redis, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) FindByUUID(ctx context.Context, uuid string) (*Location, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+uuid).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find location %q: %w", uuid, err)
	}
	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, fmt.Errorf("unmarshal location %q: %w", uuid, err)
	}
	return &loc, nil
}

func (r *Redis) Save(ctx context.Context, loc *Location) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("marshal location %q: %w", loc.UUID, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+loc.UUID, data, 0).Err(); err != nil {
		return fmt.Errorf("save location %q: %w", loc.UUID, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
