package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
)

type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const historyColumns = "id, route, type, record_id, title, query, visited_at"

// Save stores or replaces an entry.
func (s *historyStore) Save(ctx context.Context, entry domain.HistoryEntry) error {
	if entry.ID == "" || entry.Route == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			route = excluded.route,
			type = excluded.type,
			record_id = excluded.record_id,
			title = excluded.title,
			query = excluded.query,
			visited_at = excluded.visited_at
	`, entry.ID, entry.Route, string(entry.Type), entry.RecordID, entry.Title, entry.Query,
		entry.VisitedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+historyColumns+" FROM history WHERE id = ?", id)

	entry, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns at most limit entries, most recent first. A non-positive
// limit returns every entry.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+historyColumns+" FROM history ORDER BY visited_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Clear removes every entry.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(row scanner) (domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var kind string
	var visited int64

	if err := row.Scan(&entry.ID, &entry.Route, &kind, &entry.RecordID,
		&entry.Title, &entry.Query, &visited); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entry, err
		}
		return entry, fmt.Errorf("scanning history entry: %w", err)
	}

	entry.Type = domain.DomainType(kind)
	entry.VisitedAt = time.Unix(0, visited)
	return entry, nil
}
