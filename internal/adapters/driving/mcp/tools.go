package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

// SearchInput is the input schema for the global_search tool.
type SearchInput struct {
	Query   string   `json:"query" jsonschema:"text to look for in clients, services, quotations, invoices and expenses"`
	Domains []string `json:"domains,omitempty" jsonschema:"restrict results to these domains: client, service, quotation, invoice, expense"`
}

// SearchOutput is the output schema for the global_search tool.
type SearchOutput struct {
	Query         string               `json:"query"`
	Count         int                  `json:"count"`
	Results       []SearchResultOutput `json:"results"`
	FailedDomains []string             `json:"failed_domains,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Route    string `json:"route"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "global_search",
		Description: "Search clients, services, quotations, invoices and expenses at once",
	}, s.handleSearch)
}

// minLength returns the configured minimum query length.
func (s *Server) minLength() int {
	if s.ports.Settings == nil {
		return domain.DefaultMinQueryLength
	}
	settings, err := s.ports.Settings.Get()
	if err != nil || settings.Search.MinLength <= 0 {
		return domain.DefaultMinQueryLength
	}
	return settings.Search.MinLength
}

// handleSearch handles the global_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	text := domain.NormaliseQuery(input.Query)
	if minLength := s.minLength(); !domain.Acceptable(text, minLength) {
		return nil, SearchOutput{}, fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, minLength)
	}

	wanted := make(map[domain.DomainType]bool, len(input.Domains))
	for _, name := range input.Domains {
		d, err := domain.ParseDomainType(name)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("domain %q: %w", name, err)
		}
		wanted[d] = true
	}

	q := domain.Query{Generation: s.generation.Add(1), Text: text}
	batch := s.ports.Aggregator.Search(ctx, q)
	switch batch.Outcome {
	case domain.OutcomeFailed:
		s.log.Warn("generation %d failed: %v", q.Generation, batch.Err)
		return nil, SearchOutput{}, fmt.Errorf("%w: %s", ErrSearchFailed, domain.SearchFailedMessage)
	case domain.OutcomeCancelled:
		return nil, SearchOutput{}, batch.Err
	case domain.OutcomeSettled:
	}

	output := SearchOutput{
		Query:   batch.Query,
		Results: make([]SearchResultOutput, 0, len(batch.Results)),
	}
	for _, r := range batch.Results {
		if len(wanted) > 0 && !wanted[r.Type] {
			continue
		}
		output.Results = append(output.Results, SearchResultOutput{
			ID:       r.ID,
			Type:     r.Type.String(),
			Title:    r.Title,
			Subtitle: r.Subtitle,
			Route:    r.Route,
		})
	}
	output.Count = len(output.Results)

	for _, d := range batch.FailedDomains() {
		output.FailedDomains = append(output.FailedDomains, d.Domain.String())
	}

	return nil, output, nil
}
