// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-agent/pkg/types"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Args
		wantErr bool
	}{
		{"object", `{"query":"ulcerative colitis"}`, Args{Query: "ulcerative colitis"}, false},
		{"object with bound", `{"query":"crispr","max_results":3}`, Args{Query: "crispr", MaxResults: 3}, false},
		{"bound above maximum", `{"query":"cancer","max_results":500}`, Args{Query: "cancer", MaxResults: MaxToolResults}, false},
		{"negative bound", `{"query":"cancer","max_results":-4}`, Args{Query: "cancer"}, false},
		{"bare string", `"latest news France"`, Args{Query: "latest news France"}, false},
		{"padded", "  {\"query\":\"x\"}\n", Args{Query: "x"}, false},
		{"empty", ``, Args{}, true},
		{"missing query", `{"max_results":3}`, Args{}, true},
		{"blank query", `{"query":"  "}`, Args{}, true},
		{"not json", `query=cancer`, Args{}, true},
		{"empty bare string", `""`, Args{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgsSchema(t *testing.T) {
	raw, err := json.Marshal(ArgsSchema())
	require.NoError(t, err)

	var schema struct {
		Type       string                     `json:"type"`
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
		Schema     string                     `json:"$schema"`
	}
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"query"}, schema.Required)
	assert.Contains(t, schema.Properties, "query")
	assert.Contains(t, schema.Properties, "max_results")
	assert.Empty(t, schema.Schema)
}

func TestLinks(t *testing.T) {
	links := Links(types.Record{ExternalID: "38000001"})
	require.Len(t, links, 2)
	assert.Equal(t, Link{Label: "View on PubMed", URL: "https://pubmed.ncbi.nlm.nih.gov/38000001/"}, links[0])
	assert.Equal(t, Link{Label: "Try PDF (PMC)", URL: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC38000001/pdf/"}, links[1])

	assert.Nil(t, Links(types.Record{ExternalID: "  "}))
	assert.Nil(t, Links(types.Record{URL: "https://example.org"}))
}
