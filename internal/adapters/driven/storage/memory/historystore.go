package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// It is used when history persistence is disabled.
type HistoryStore struct {
	mu      sync.RWMutex
	entries map[string]domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make(map[string]domain.HistoryEntry),
	}
}

// Save stores an entry.
func (s *HistoryStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return nil
}

// Get retrieves an entry by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns at most limit entries, most recent first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].VisitedAt.Equal(result[j].VisitedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].VisitedAt.After(result[j].VisitedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Clear removes every entry.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.HistoryEntry)
	return nil
}
