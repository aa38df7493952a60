// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ToolCall records one tool invocation made while answering a query.
// It is kept for display only.
type ToolCall struct {
	// Name is the tool the model asked for.
	Name string `json:"name" yaml:"name"`

	// Arguments is the raw JSON argument string sent by the model.
	Arguments string `json:"arguments" yaml:"arguments"`

	// Results is the number of records the adapter returned.
	Results int `json:"results" yaml:"results"`

	// Error is the message reported back to the model when the call could not run.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Answer is the synthesized output of one run.
type Answer struct {
	// Content is the final (or best partial) model text.
	Content string `json:"content" yaml:"content"`

	// ToolCalls lists the invocations made during the run, in order.
	ToolCalls []ToolCall `json:"tool_calls,omitempty" yaml:"tool_calls,omitempty"`

	// Partial is true when the iteration cap ended the run before a final answer.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`

	// Agent is the orchestrator name that produced the answer.
	Agent string `json:"agent,omitempty" yaml:"agent,omitempty"`

	// Model is the model identifier used.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Iterations is the number of completion requests sent.
	Iterations int `json:"iterations" yaml:"iterations"`
}
