package ratelimit

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"sigval/internal/usecase"
)

const redisKeyPrefix = "sigval:ratelimit:"

// Redis counts requests in a fixed window shared by every replica.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

var incrWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {current, ttl}
`)

func NewRedis(addr, password string, db int, now func() time.Time) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisWithClient(client, now), nil
}

func NewRedisWithClient(client *redis.Client, now func() time.Time) *Redis {
	if now == nil {
		now = time.Now
	}
	return &Redis{client: client, now: now}
}

func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (usecase.RateLimitDecision, error) {
	if limit <= 0 {
		return unlimited(limit), nil
	}
	windowMillis := window.Milliseconds()
	if windowMillis <= 0 {
		windowMillis = 1000
	}
	result, err := incrWindowScript.Run(ctx, r.client, []string{redisKeyPrefix + key}, windowMillis).Result()
	if err != nil {
		return usecase.RateLimitDecision{}, errors.Wrap(err, "redis rate limit")
	}
	current, ttlMillis, err := parseWindowReply(result)
	if err != nil {
		return usecase.RateLimitDecision{}, err
	}
	return decide(limit, current, r.now(), ttlMillis), nil
}

func parseWindowReply(result any) (int64, int64, error) {
	values, ok := result.([]any)
	if !ok || len(values) < 2 {
		return 0, 0, errors.New("unexpected redis rate limit response")
	}
	current, ok := values[0].(int64)
	if !ok {
		return 0, 0, errors.New("invalid redis counter response")
	}
	ttlMillis, _ := values[1].(int64)
	return current, ttlMillis, nil
}

func decide(limit int, current int64, now time.Time, ttlMillis int64) usecase.RateLimitDecision {
	resetAt := now
	if ttlMillis > 0 {
		resetAt = now.Add(time.Duration(ttlMillis) * time.Millisecond)
	}
	remaining := limit - int(current)
	if remaining < 0 {
		remaining = 0
	}
	return usecase.RateLimitDecision{
		Allowed:   current <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

var _ usecase.RateLimiter = (*Redis)(nil)
