package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for finvo resources.
	uriScheme = "finvo://"

	mimeJSON = "application/json"
)

// domainInfo describes one searchable domain.
type domainInfo struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	RoutePrefix string `json:"route_prefix"`
}

// historyInfo is one recent navigation.
type historyInfo struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Route     string `json:"route"`
	Query     string `json:"query,omitempty"`
	VisitedAt string `json:"visited_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "domains",
		Name:        "domains",
		Description: "The searchable record domains, in result order",
		MIMEType:    mimeJSON,
	}, s.handleDomainsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "domains/{type}",
		Name:        "domain",
		Description: "A single searchable domain",
		MIMEType:    mimeJSON,
	}, s.handleDomainResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently opened records, newest first",
		MIMEType:    mimeJSON,
	}, s.handleHistoryResource)
}

func describeDomain(d domain.DomainType) domainInfo {
	return domainInfo{
		Type:        d.String(),
		Label:       d.Label(),
		Icon:        d.Icon(),
		RoutePrefix: d.RoutePrefix(),
	}
}

// handleDomainsResource lists the searched domains.
func (s *Server) handleDomainsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	domains := s.ports.Aggregator.Domains()
	infos := make([]domainInfo, len(domains))
	for i, d := range domains {
		infos[i] = describeDomain(d)
	}
	return jsonResult(req.Params.URI, infos)
}

// handleDomainResource describes one domain.
func (s *Server) handleDomainResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	d, err := domain.ParseDomainType(extractDomainType(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResult(req.Params.URI, describeDomain(d))
}

// handleHistoryResource returns recent navigations.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: mimeJSON,
				Text:     "[]",
			}},
		}, nil
	}

	entries, err := s.ports.History.Recent(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	infos := make([]historyInfo, len(entries))
	for i := range entries {
		infos[i] = historyInfo{
			ID:        entries[i].ID,
			Type:      entries[i].Type.String(),
			Title:     entries[i].Title,
			Route:     entries[i].Route,
			Query:     entries[i].Query,
			VisitedAt: entries[i].VisitedAt.UTC().Format(time.RFC3339),
		}
	}
	return jsonResult(req.Params.URI, infos)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractDomainType extracts the type from a URI like finvo://domains/{type}.
func extractDomainType(uri string) string {
	const prefix = uriScheme + "domains/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
