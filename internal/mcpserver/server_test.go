// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

type stubAdapter struct {
	name    string
	records []types.Record
	err     error

	gotQuery string
	gotMax   int
}

func (s *stubAdapter) Name() string        { return s.name }
func (s *stubAdapter) Description() string { return "stub " + s.name }

func (s *stubAdapter) Search(_ context.Context, query string, maxResults int) ([]types.Record, error) {
	s.gotQuery = query
	s.gotMax = maxResults
	return s.records, s.err
}

func connect(t *testing.T, adapters ...search.Adapter) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := New(adapters, "test", nil)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func TestListTools(t *testing.T) {
	cs := connect(t, &stubAdapter{name: "search_pubmed"}, &stubAdapter{name: "web_search"})

	res, err := cs.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"search_pubmed", "web_search"}, names)
}

func TestCallSearchTool(t *testing.T) {
	pubmed := &stubAdapter{
		name:    "search_pubmed",
		records: []types.Record{{Title: "Deep learning for early cancer detection.", ExternalID: "38000001"}},
	}
	cs := connect(t, pubmed)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_pubmed",
		Arguments: map[string]any{"query": "AI cancer detection", "max_results": 3},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "AI cancer detection", pubmed.gotQuery)
	assert.Equal(t, 3, pubmed.gotMax)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out SearchOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "search_pubmed", out.Tool)
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "38000001", out.Records[0].ExternalID)
}

func TestCallSearchToolEmpty(t *testing.T) {
	cs := connect(t, &stubAdapter{name: "web_search"})

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "web_search",
		Arguments: map[string]any{"query": "zzzxqv"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":"web_search","count":0,"records":[]}`, string(raw))
}

func TestCallSearchToolError(t *testing.T) {
	pubmed := &stubAdapter{
		name: "search_pubmed",
		err:  types.Errorf(types.KindUpstreamRejected, "search_pubmed", "a contact email is required"),
	}
	cs := connect(t, pubmed)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_pubmed",
		Arguments: map[string]any{"query": "x"},
	})
	require.NoError(t, err, "adapter failures are tool errors, not protocol errors")
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "rejected the request")
	assert.Contains(t, text.Text, "contact email")
}
