package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driving"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of entries listed by Recent.
const DefaultHistoryLimit = 50

// HistoryService records navigations and re-opens them.
type HistoryService struct {
	store     driven.HistoryStore
	navigator driven.Navigator
	limit     int
	clock     clockwork.Clock
	log       logger.Scoped
}

// NewHistoryService creates a history service.
// The store may be nil, in which case nothing is recorded.
func NewHistoryService(store driven.HistoryStore, navigator driven.Navigator, limit int) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{
		store:     store,
		navigator: navigator,
		limit:     limit,
		clock:     clockwork.NewRealClock(),
		log:       logger.For("history"),
	}
}

// SetClock sets the clock used to timestamp re-opened entries.
func (s *HistoryService) SetClock(c clockwork.Clock) {
	s.clock = c
}

// Navigator returns a navigator that delegates to the wrapped one and
// records every successful navigation.
func (s *HistoryService) Navigator() driven.Navigator {
	return recordingNavigator{history: s}
}

// Record stores a navigation.
func (s *HistoryService) Record(ctx context.Context, intent domain.NavigationIntent) error {
	if s.store == nil {
		return nil
	}
	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Route:     intent.Route,
		Type:      intent.Type,
		RecordID:  intent.ID,
		Title:     intent.Title,
		Query:     intent.Query,
		VisitedAt: intent.At,
	}
	if entry.VisitedAt.IsZero() {
		entry.VisitedAt = s.clock.Now()
	}
	if err := s.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	s.log.Debug("recorded %s", entry.Route)
	return nil
}

// Recent returns the most recent navigations.
func (s *HistoryService) Recent(ctx context.Context) ([]domain.HistoryEntry, error) {
	if s.store == nil {
		return []domain.HistoryEntry{}, nil
	}
	entries, err := s.store.List(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Reopen navigates to a history entry again and records the visit.
func (s *HistoryService) Reopen(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotFound
	}
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get history entry %s: %w", id, err)
	}
	return s.Navigator().Navigate(ctx, entry.Intent(s.clock.Now()))
}

// Clear forgets every navigation.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

type recordingNavigator struct {
	history *HistoryService
}

func (n recordingNavigator) Navigate(ctx context.Context, intent domain.NavigationIntent) error {
	if err := n.history.navigator.Navigate(ctx, intent); err != nil {
		return err
	}
	if err := n.history.Record(ctx, intent); err != nil {
		n.history.log.Warn("%v", err)
	}
	return nil
}
