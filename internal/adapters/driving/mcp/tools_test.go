package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: 1, Title: "Acme Corporation", Subtitle: "billing@acme.example • No phone",
			Type: domain.DomainClient, Route: "/clients/1"},
		{ID: 1, Title: "Invoice #INV-1001", Subtitle: "Acme Corporation • $5,400.00",
			Type: domain.DomainInvoice, Route: "/invoices/1"},
	}
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns merged results", func(t *testing.T) {
		agg := &mockAggregator{batch: domain.Batch{Results: sampleResults()}}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "  acme "})

		require.NoError(t, err)
		assert.Equal(t, "acme", output.Query)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, SearchResultOutput{
			ID: 1, Type: "invoice", Title: "Invoice #INV-1001",
			Subtitle: "Acme Corporation • $5,400.00", Route: "/invoices/1",
		}, output.Results[1])
		assert.Empty(t, output.FailedDomains)
		require.Len(t, agg.queries, 1)
		assert.Equal(t, uint64(1), agg.queries[0].Generation)
	})

	t.Run("generations increase per call", func(t *testing.T) {
		agg := &mockAggregator{}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme"})
		require.NoError(t, err)
		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "globex"})
		require.NoError(t, err)

		require.Len(t, agg.queries, 2)
		assert.Equal(t, uint64(2), agg.queries[1].Generation)
	})

	t.Run("filters by domain", func(t *testing.T) {
		agg := &mockAggregator{batch: domain.Batch{Results: sampleResults()}}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme", Domains: []string{"invoice"}})

		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, "/invoices/1", output.Results[0].Route)
	})

	t.Run("unknown domain is rejected", func(t *testing.T) {
		server := newTestServer(t, &Ports{Aggregator: &mockAggregator{}})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme", Domains: []string{"project"}})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("short query is rejected without searching", func(t *testing.T) {
		agg := &mockAggregator{}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: " a "})

		assert.ErrorIs(t, err, ErrQueryTooShort)
		assert.Empty(t, agg.queries)
	})

	t.Run("minimum length comes from settings", func(t *testing.T) {
		agg := &mockAggregator{}
		server := newTestServer(t, &Ports{Aggregator: agg, Settings: &mockSettings{minLength: 5}})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme"})

		assert.ErrorIs(t, err, ErrQueryTooShort)
		assert.Contains(t, err.Error(), "5")
	})

	t.Run("settings error falls back to default", func(t *testing.T) {
		server := newTestServer(t, &Ports{
			Aggregator: &mockAggregator{},
			Settings:   &mockSettings{err: errors.New("broken")},
		})

		assert.Equal(t, domain.DefaultMinQueryLength, server.minLength())
	})

	t.Run("partial failure reports failed domains", func(t *testing.T) {
		agg := &mockAggregator{batch: domain.Batch{
			Results: sampleResults()[:1],
			Domains: []domain.DomainOutcome{
				{Domain: domain.DomainClient, Count: 1},
				{Domain: domain.DomainInvoice, Err: errors.New("timeout")},
			},
		}}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, []string{"invoice"}, output.FailedDomains)
	})

	t.Run("total failure is an error", func(t *testing.T) {
		agg := &mockAggregator{batch: domain.Batch{Outcome: domain.OutcomeFailed, Err: errors.New("down")}}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme"})

		assert.ErrorIs(t, err, ErrSearchFailed)
		assert.Contains(t, err.Error(), domain.SearchFailedMessage)
	})

	t.Run("cancelled search returns the context error", func(t *testing.T) {
		agg := &mockAggregator{batch: domain.Batch{Outcome: domain.OutcomeCancelled, Err: context.Canceled}}
		server := newTestServer(t, &Ports{Aggregator: agg})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "acme"})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
