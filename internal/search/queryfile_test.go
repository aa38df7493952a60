// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQueryFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *QueryFile
		errMsg  string
	}{
		{
			name: "queries and bound",
			content: `max_results: 3
queries:
  - What is ulcerative colitis?
  - "  New AI methods for cancer detection  "
  - ""
`,
			want: &QueryFile{MaxResults: 3, Queries: []string{
				"What is ulcerative colitis?",
				"New AI methods for cancer detection",
			}},
		},
		{
			name:    "no queries",
			content: "queries: []\n",
			errMsg:  "has no queries",
		},
		{
			name:    "only blanks",
			content: "queries:\n  - ' '\n",
			errMsg:  "has no queries",
		},
		{
			name:    "negative bound",
			content: "max_results: -1\nqueries: [a]\n",
			errMsg:  "max_results",
		},
		{
			name:    "not yaml",
			content: "queries: [unterminated\n",
			errMsg:  "parsing query file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "queries.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ReadQueryFile(path)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading query file")
}
