package artifact

import (
	"context"
	"sync"
	"time"

	"github.com/Dhoini/Admin-panel/internal/domain"
)

type memoryEntry struct {
	artifact  Artifact
	expiresAt time.Time
}

// MemoryStore хранит отчеты в памяти процесса. Expired entries are dropped
// on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore создает хранилище отчетов в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save сохраняет копию отчета
func (s *MemoryStore) Save(_ context.Context, a *Artifact, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}

	cp := *a
	cp.Data = append([]byte(nil), a.Data...)
	s.entries[a.ID] = memoryEntry{artifact: cp, expiresAt: now.Add(ttl)}
	return nil
}

// Get возвращает копию отчета
func (s *MemoryStore) Get(_ context.Context, id string) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, domain.NewNotFoundError("report", id)
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return nil, domain.NewNotFoundError("report", id)
	}

	cp := e.artifact
	cp.Data = append([]byte(nil), e.artifact.Data...)
	return &cp, nil
}

// Close ничего не делает
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
