// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the search adapters as Model Context Protocol
// tools so other agents can call them without the model client.
package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

const serverName = "research-agent"

// SearchInput is the argument object of every search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"search terms to send to the source"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return"`
}

// SearchOutput is the structured result of a search tool.
type SearchOutput struct {
	Tool    string         `json:"tool"`
	Count   int            `json:"count"`
	Records []types.Record `json:"records"`
}

// New builds an MCP server with one tool per adapter.
func New(adapters []search.Adapter, version string, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: version,
	}, nil)

	for _, a := range adapters {
		addSearchTool(server, a, logger)
	}
	return server
}

func addSearchTool(server *mcp.Server, a search.Adapter, logger *slog.Logger) {
	tool := &mcp.Tool{
		Name:        a.Name(),
		Description: a.Description(),
	}
	mcp.AddTool(server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		start := time.Now()
		records, err := a.Search(ctx, in.Query, in.MaxResults)
		if err != nil {
			logger.Warn("tool call failed", "tool", a.Name(), "kind", string(types.KindOf(err)), "error", err)
			return nil, SearchOutput{}, errors.New(types.UserMessage(err))
		}
		if records == nil {
			records = []types.Record{}
		}
		logger.Info("tool call", "tool", a.Name(), "results", len(records), "elapsed", time.Since(start))
		return nil, SearchOutput{Tool: a.Name(), Count: len(records), Records: records}, nil
	})
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func Run(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
