// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// MaxToolResults is the largest max_results a model may request; larger
// values are lowered to it.
const MaxToolResults = 20

// Args is the argument object a model sends when it invokes an adapter as a tool.
type Args struct {
	Query      string `json:"query" jsonschema:"title=query,description=Search terms to send to the source."`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"title=max_results,description=Maximum number of results to return.,minimum=1,maximum=20"`
}

// ParseArgs decodes a tool-call argument string. Some hosted models send a
// bare string instead of an object; that is accepted as the query.
func ParseArgs(raw string) (Args, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Args{}, fmt.Errorf("missing arguments")
	}

	var args Args
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		if strings.TrimSpace(args.Query) == "" {
			return Args{}, fmt.Errorf("argument %q is required", "query")
		}
		args.MaxResults = max(0, min(args.MaxResults, MaxToolResults))
		return args, nil
	}

	var bare string
	if err := json.Unmarshal([]byte(raw), &bare); err == nil && strings.TrimSpace(bare) != "" {
		return Args{Query: bare}, nil
	}
	return Args{}, fmt.Errorf("arguments are not a JSON object: %s", raw)
}

// ArgsSchema returns the JSON Schema for Args, inlined so it can be embedded
// directly in a function-tool definition.
func ArgsSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}
	s := r.Reflect(&Args{})
	s.Version = ""
	return s
}
