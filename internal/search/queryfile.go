// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// QueryFile is a YAML list of queries run one after another in one-shot
// mode, for example:
//
//	max_results: 5
//	queries:
//	  - What is ulcerative colitis?
//	  - New AI methods for cancer detection
type QueryFile struct {
	MaxResults int      `yaml:"max_results,omitempty"`
	Queries    []string `yaml:"queries"`
}

// ReadQueryFile loads a query file from disk. Blank entries are dropped; a
// file with no queries left is an error.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}

	queries := qf.Queries[:0]
	for _, q := range qf.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	qf.Queries = queries
	if len(qf.Queries) == 0 {
		return nil, fmt.Errorf("query file %s has no queries", path)
	}
	if qf.MaxResults < 0 {
		return nil, fmt.Errorf("query file %s: max_results must be positive", path)
	}
	return &qf, nil
}
