package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
)

// Backend collection paths, relative to the API root.
const (
	PathClients    = "/clients/"
	PathServices   = "/services/"
	PathQuotations = "/quotations/"
	PathInvoices   = "/invoices/"
	PathActivities = "/financial-activities/"
)

// ActivityFilter is the structured filter of the financial activity list.
type ActivityFilter struct {
	// Search is the free-text query.
	Search string

	// ActivityType restricts to one type, e.g. "expense".
	ActivityType string

	// Status restricts to one status, e.g. "pending".
	Status string

	// ClientID restricts to one client. Zero means any.
	ClientID int64
}

// Values encodes the filter as query parameters.
func (f ActivityFilter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.ActivityType != "" {
		v.Set("activity_type", f.ActivityType)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.ClientID != 0 {
		v.Set("client", strconv.FormatInt(f.ClientID, 10))
	}
	return v
}

func searchParams(text string) url.Values {
	return url.Values{"search": []string{text}}
}

// SearchClients searches the client domain.
func (c *Client) SearchClients(ctx context.Context, text string) ([]domain.Record, error) {
	return list(ctx, c, PathClients, searchParams(text), clientDTO.record)
}

// SearchServices searches the service catalogue.
func (c *Client) SearchServices(ctx context.Context, text string) ([]domain.Record, error) {
	return list(ctx, c, PathServices, searchParams(text), serviceDTO.record)
}

// SearchQuotations searches quotations.
func (c *Client) SearchQuotations(ctx context.Context, text string) ([]domain.Record, error) {
	return list(ctx, c, PathQuotations, searchParams(text), billingDTO.quotation)
}

// SearchInvoices searches invoices.
func (c *Client) SearchInvoices(ctx context.Context, text string) ([]domain.Record, error) {
	return list(ctx, c, PathInvoices, searchParams(text), billingDTO.invoice)
}

// SearchActivities lists financial activities matching the filter.
func (c *Client) SearchActivities(ctx context.Context, filter ActivityFilter) ([]domain.Record, error) {
	return list(ctx, c, PathActivities, filter.Values(), activityDTO.record)
}

// Searchers returns one searcher per domain, in fixed domain order.
func (c *Client) Searchers() []driven.DomainSearcher {
	return []driven.DomainSearcher{
		searcher{domain: domain.DomainClient, search: c.SearchClients},
		searcher{domain: domain.DomainService, search: c.SearchServices},
		searcher{domain: domain.DomainQuotation, search: c.SearchQuotations},
		searcher{domain: domain.DomainInvoice, search: c.SearchInvoices},
		searcher{domain: domain.DomainExpense, search: func(ctx context.Context, text string) ([]domain.Record, error) {
			return c.SearchActivities(ctx, ActivityFilter{Search: text})
		}},
	}
}

// searcher adapts one search method to driven.DomainSearcher.
type searcher struct {
	domain domain.DomainType
	search func(ctx context.Context, text string) ([]domain.Record, error)
}

func (s searcher) Domain() domain.DomainType {
	return s.domain
}

func (s searcher) Search(ctx context.Context, text string) ([]domain.Record, error) {
	return s.search(ctx, text)
}
