package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru"

	"sigval/internal/domain"
	"sigval/internal/infra/codec"
	"sigval/internal/usecase"
)

const defaultMaxEntries = 1000

// Memory keeps encoded validation records in a size-bounded LRU, in the same
// JSON form as the Redis cache. Every hit decodes a fresh record.
type Memory struct {
	entries *lru.Cache
	now     func() time.Time
}

type memoryEntry struct {
	record    []byte
	expiresAt time.Time
}

func NewMemory(maxEntries int) (*Memory, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	entries, err := lru.New(maxEntries)
	if err != nil {
		return nil, errors.Wrap(err, "create report cache")
	}
	return &Memory{entries: entries, now: time.Now}, nil
}

func (c *Memory) Get(ctx context.Context, key usecase.ReportCacheKey) (*domain.ValidationRecord, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	k := key.String()
	value, ok := c.entries.Get(k)
	if !ok {
		return nil, false, nil
	}
	entry := value.(memoryEntry)
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.entries.Remove(k)
		return nil, false, nil
	}
	rec, err := codec.DecodeRecord(entry.record)
	if err != nil {
		c.entries.Remove(k)
		return nil, false, err
	}
	return rec, true, nil
}

func (c *Memory) Set(ctx context.Context, key usecase.ReportCacheKey, rec domain.ValidationRecord, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	data, err := codec.EncodeRecord(rec)
	if err != nil {
		return err
	}
	entry := memoryEntry{record: data}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries.Add(key.String(), entry)
	return nil
}

func (c *Memory) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

var _ usecase.ReportCache = (*Memory)(nil)
