package satisfaction

import (
	"sync"

	"convoscore/internal/domain"
)

// MemoryStore is an in-process Store. Appends are serialized under a write
// lock and reads copy under a read lock, so a reader never observes a
// partially appended record.
type MemoryStore struct {
	mu   sync.RWMutex
	recs []domain.SatisfactionRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(rec domain.SatisfactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *MemoryStore) Recent(n int) ([]domain.SatisfactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.recs
	if n > 0 && len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	out := make([]domain.SatisfactionRecord, len(recs))
	copy(out, recs)
	return out, nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs), nil
}
