package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"sigval/internal/usecase"
)

var ErrCapacityExceeded = errors.New("rate limiter capacity exceeded")

// Memory is a fixed-window counter per key. It only limits a single replica;
// use Redis when the service is scaled out.
type Memory struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]*fixedWindow
	maxKeys int
}

type fixedWindow struct {
	count int
	end   time.Time
}

func NewMemory(maxKeys int, now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &Memory{
		now:     now,
		windows: make(map[string]*fixedWindow),
		maxKeys: maxKeys,
	}
}

func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (usecase.RateLimitDecision, error) {
	if limit <= 0 {
		return unlimited(limit), nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.After(w.end) {
		if !ok && len(m.windows) >= m.maxKeys {
			m.sweep(now)
			if len(m.windows) >= m.maxKeys {
				return usecase.RateLimitDecision{}, ErrCapacityExceeded
			}
		}
		w = &fixedWindow{end: now.Add(window)}
		m.windows[key] = w
	}

	if w.count >= limit {
		return usecase.RateLimitDecision{Limit: limit, ResetAt: w.end}, nil
	}
	w.count++
	return usecase.RateLimitDecision{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - w.count,
		ResetAt:   w.end,
	}, nil
}

func (m *Memory) sweep(now time.Time) {
	for key, w := range m.windows {
		if now.After(w.end) {
			delete(m.windows, key)
		}
	}
}

func unlimited(limit int) usecase.RateLimitDecision {
	return usecase.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit}
}

var _ usecase.RateLimiter = (*Memory)(nil)
