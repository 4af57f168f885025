package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"sigval/internal/domain"
	"sigval/internal/infra/codec"
	"sigval/internal/usecase"
)

const keyPrefix = "sigval:report:"

// Redis shares cached reports between replicas. Values are the JSON encoding
// of the whole validation record, keyed by document digest, pinned time and
// policy.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string, db int) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{client: client}, nil
}

func NewRedisWithClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (c *Redis) Get(ctx context.Context, key usecase.ReportCacheKey) (*domain.ValidationRecord, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	rec, err := codec.DecodeRecord(data)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (c *Redis) Set(ctx context.Context, key usecase.ReportCacheKey, rec domain.ValidationRecord, ttl time.Duration) error {
	data, err := codec.EncodeRecord(rec)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key.String(), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

func (c *Redis) Close() error {
	return c.client.Close()
}

var _ usecase.ReportCache = (*Redis)(nil)
