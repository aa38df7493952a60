// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Step is the decoded outcome of one completion: either FinalText or a
// ToolRequest. The loop in Complete switches on the concrete type.
type Step interface {
	step()
}

// FinalText ends the loop with the model's answer.
type FinalText struct {
	Text string
}

// ToolInvocation is one "invoke tool Name with Arguments" instruction.
type ToolInvocation struct {
	ID        string
	Name      string
	Arguments string
}

// ToolRequest asks the client to run one or more tools and resubmit. Text is
// any prose the model produced alongside the calls; it becomes the partial
// answer if the iteration cap is reached.
type ToolRequest struct {
	Text        string
	Invocations []ToolInvocation
}

func (FinalText) step()   {}
func (ToolRequest) step() {}

// decodeStep classifies an assistant message.
func decodeStep(msg openai.ChatCompletionMessage) Step {
	text := strings.TrimSpace(msg.Content)
	if len(msg.ToolCalls) == 0 {
		return FinalText{Text: text}
	}
	req := ToolRequest{Text: text, Invocations: make([]ToolInvocation, 0, len(msg.ToolCalls))}
	for _, tc := range msg.ToolCalls {
		req.Invocations = append(req.Invocations, ToolInvocation{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return req
}
