package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// mockAggregator is a mock implementation of driving.SearchAggregator.
type mockAggregator struct {
	batch   domain.Batch
	queries []domain.Query
}

func (m *mockAggregator) Search(_ context.Context, q domain.Query) domain.Batch {
	m.queries = append(m.queries, q)
	b := m.batch
	b.Generation = q.Generation
	b.Query = q.Text
	if b.Outcome == "" {
		b.Outcome = domain.OutcomeSettled
	}
	return b
}

func (m *mockAggregator) Domains() []domain.DomainType {
	return domain.Domains()
}

// mockHistory is a mock implementation of driving.HistoryService.
type mockHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistory) Recent(_ context.Context) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistory) Reopen(_ context.Context, _ string) error {
	return errors.New("not supported")
}

func (m *mockHistory) Clear(_ context.Context) error {
	return nil
}

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	minLength int
	err       error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := domain.DefaultAppSettings()
	s.Search.MinLength = m.minLength
	return &s, nil
}

func (m *mockSettings) Set(_, _ string) error { return nil }

func (m *mockSettings) Keys() []string { return nil }

func (m *mockSettings) IsSecret(_ string) bool { return false }

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
