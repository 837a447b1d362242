package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
)

// RecordStore holds business records in memory and searches them the
// way the backend does: case-insensitive substring over the text fields.
// It powers the offline demo mode.
type RecordStore struct {
	mu      sync.RWMutex
	records map[domain.DomainType][]domain.Record
	latency time.Duration
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[domain.DomainType][]domain.Record),
	}
}

// NewDemoRecordStore creates a store preloaded with sample records.
func NewDemoRecordStore() *RecordStore {
	s := NewRecordStore()
	for _, r := range demoRecords() {
		s.Add(r)
	}
	return s
}

// SetLatency makes every search wait d before answering.
func (s *RecordStore) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latency = d
}

// Add appends a record to its domain.
func (s *RecordStore) Add(r domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := r.Domain()
	s.records[d] = append(s.records[d], r)
}

// Count returns the number of records of a domain.
func (s *RecordStore) Count(d domain.DomainType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records[d])
}

// Searchers returns one searcher per domain, in fixed domain order.
func (s *RecordStore) Searchers() []driven.DomainSearcher {
	out := make([]driven.DomainSearcher, 0, len(domain.Domains()))
	for _, d := range domain.Domains() {
		out = append(out, &recordSearcher{store: s, domain: d})
	}
	return out
}

func (s *RecordStore) search(ctx context.Context, d domain.DomainType, text string) ([]domain.Record, error) {
	s.mu.RLock()
	latency := s.latency
	records := s.records[d]
	s.mu.RUnlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	needle := strings.ToLower(text)
	var out []domain.Record
	for _, r := range records {
		if matches(r, needle) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matches(r domain.Record, needle string) bool {
	var fields []string
	switch v := r.(type) {
	case domain.ClientRecord:
		fields = []string{v.Name, v.Email, v.Phone}
	case domain.ServiceRecord:
		fields = []string{v.Name, v.Description}
	case domain.QuotationRecord:
		fields = []string{v.Number, v.ClientName}
	case domain.InvoiceRecord:
		fields = []string{v.Number, v.ClientName}
	case domain.ActivityRecord:
		fields = []string{v.Description, v.Type}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

type recordSearcher struct {
	store  *RecordStore
	domain domain.DomainType
}

func (r *recordSearcher) Domain() domain.DomainType {
	return r.domain
}

func (r *recordSearcher) Search(ctx context.Context, text string) ([]domain.Record, error) {
	return r.store.search(ctx, r.domain, text)
}

func demoRecords() []domain.Record {
	return []domain.Record{
		domain.ClientRecord{ID: 1, Name: "Acme Corporation", Email: "billing@acme.example", Phone: "+1 555 0100"},
		domain.ClientRecord{ID: 2, Name: "Globex Ltd", Email: "accounts@globex.example"},
		domain.ClientRecord{ID: 3, Name: "Initech", Phone: "+1 555 0199"},
		domain.ClientRecord{ID: 4, Name: "Umbrella Health", Email: "finance@umbrella.example", Phone: "+1 555 0142"},
		domain.ClientRecord{ID: 5, Name: "Stark Consulting", Email: "pepper@stark.example"},
		domain.ClientRecord{ID: 6, Name: "Acme Logistics", Email: "ops@acmelogistics.example"},

		domain.ServiceRecord{ID: 1, Name: "Website maintenance", Description: "Monthly updates and monitoring", Price: "450.00"},
		domain.ServiceRecord{ID: 2, Name: "Bookkeeping", Description: "Quarterly bookkeeping", Price: "1200.00"},
		domain.ServiceRecord{ID: 3, Name: "Tax filing", Price: "800.00"},
		domain.ServiceRecord{ID: 4, Name: "Consulting hour", Description: "Senior consultant, billed hourly", Price: "150.00"},

		domain.QuotationRecord{ID: 1, Number: "Q-2024-001", ClientName: "Acme Corporation", FormattedTotal: "$5,400.00", TotalAmount: "5400.00"},
		domain.QuotationRecord{ID: 2, Number: "Q-2024-002", ClientName: "Globex Ltd", TotalAmount: "1200.00"},
		domain.QuotationRecord{ID: 3, Number: "Q-2024-003", ClientName: "Initech"},
		domain.QuotationRecord{ID: 4, Number: "Q-2024-004", ClientName: "Acme Logistics", FormattedTotal: "$980.00"},

		domain.InvoiceRecord{ID: 1, Number: "INV-1001", ClientName: "Acme Corporation", FormattedTotal: "$5,400.00", TotalAmount: "5400.00"},
		domain.InvoiceRecord{ID: 2, Number: "INV-1002", ClientName: "Umbrella Health", TotalAmount: "2300.50"},
		domain.InvoiceRecord{ID: 3, Number: "INV-1003", ClientName: "Stark Consulting", FormattedTotal: "$150.00"},
		domain.InvoiceRecord{ID: 4, Number: "INV-1004"},

		domain.ActivityRecord{ID: 1, Description: "Office rent", Type: "expense", Amount: "1800.00"},
		domain.ActivityRecord{ID: 2, Description: "Acme payment received", Type: "income", Amount: "5400.00"},
		domain.ActivityRecord{ID: 3, Description: "Software subscriptions", Type: "expense", Amount: "129.99"},
		domain.ActivityRecord{ID: 4, Type: "expense", Amount: "42.00"},
	}
}
