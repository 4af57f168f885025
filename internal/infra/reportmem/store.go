package reportmem

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"sigval/internal/domain"
	"sigval/internal/usecase"
)

// Store keeps validation records in process memory. It backs the service
// when no postgres DSN is configured.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.ValidationRecord
	order   []string
	max     int
}

// New returns a store that keeps at most max records, evicting the oldest.
// max <= 0 means unbounded.
func New(max int) *Store {
	return &Store{
		records: make(map[string]domain.ValidationRecord),
		max:     max,
	}
}

func (s *Store) Save(ctx context.Context, rec domain.ValidationRecord) error {
	if rec.ID == "" {
		return errors.New("id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return errors.Newf("record %s already exists", rec.ID)
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	if s.max > 0 && len(s.order) > s.max {
		evict := s.order[0]
		s.order = s.order[1:]
		delete(s.records, evict)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.ValidationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

var _ usecase.ReportRepository = (*Store)(nil)
