// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package model talks to a hosted chat-completion endpoint and runs the
// bounded tool-invocation loop: send the query with tool descriptions, run
// any tools the model asks for, feed the results back, and stop at final
// text or the iteration cap.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Defaults applied when ModelConfig leaves a field zero.
const (
	DefaultBaseURL       = "https://router.huggingface.co/v1"
	DefaultModelID       = "meta-llama/Meta-Llama-3-8B-Instruct"
	DefaultMaxIterations = 4
	DefaultTimeout       = 60 * time.Second
)

// RetryInitialInterval is the first backoff delay after a retryable endpoint
// failure. Tests override this to avoid real sleeps.
var RetryInitialInterval = 500 * time.Millisecond

// Options controls a single Complete call.
type Options struct {
	ModelID         string
	MaxOutputTokens int
	Temperature     float32
	MaxIterations   int
	Instructions    string
}

// Client sends chat completions through an OpenAI-compatible API.
type Client struct {
	cfg    types.ModelConfig
	api    *openai.Client
	logger *slog.Logger
}

// New returns a client for cfg. A missing API key is not an error here; it
// surfaces as an authentication error on the first Complete call.
func New(cfg types.ModelConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{cfg: cfg, api: openai.NewClientWithConfig(oc), logger: logger}
}

// OptionsFrom builds Options from the configured model settings.
func OptionsFrom(cfg types.ModelConfig, instructions string) Options {
	return Options{
		ModelID:         cfg.ModelID,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
		MaxIterations:   cfg.MaxIterations,
		Instructions:    instructions,
	}
}

// Complete answers query, letting the model call any of tools. Reaching the
// iteration cap is not an error: the last partial text is returned with
// Answer.Partial set. Adapter errors are returned unchanged.
func (c *Client) Complete(ctx context.Context, query string, tools []search.Adapter, opts Options) (types.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Answer{}, types.Errorf(types.KindEmptyQuery, source, "no query text")
	}
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return types.Answer{}, types.Errorf(types.KindAuthentication, source,
			"no API token configured (set HUGGINGFACEHUB_API_TOKEN)")
	}

	opts = c.withDefaults(opts)
	answer := types.Answer{Model: opts.ModelID}

	messages := make([]openai.ChatCompletionMessage, 0, 8)
	if opts.Instructions != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.Instructions,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})

	defs := toolDefinitions(tools)
	partial := ""
	rounds := 0

	for {
		req := openai.ChatCompletionRequest{
			Model:       opts.ModelID,
			Messages:    messages,
			MaxTokens:   opts.MaxOutputTokens,
			Temperature: opts.Temperature,
			Tools:       defs,
		}

		msg, err := c.send(ctx, req)
		answer.Iterations++
		if err != nil {
			return answer, err
		}

		switch step := decodeStep(msg).(type) {
		case FinalText:
			answer.Content = step.Text
			if answer.Content == "" {
				answer.Content = partial
			}
			c.logger.Debug("model answered", "iterations", answer.Iterations, "tool_calls", len(answer.ToolCalls))
			return answer, nil

		case ToolRequest:
			if step.Text != "" {
				partial = step.Text
			}
			if rounds >= opts.MaxIterations {
				c.logger.Warn("tool loop cap reached",
					"max_iterations", opts.MaxIterations, "tool_calls", len(answer.ToolCalls))
				answer.Partial = true
				answer.Content = partial
				if answer.Content == "" {
					answer.Content = capNotice(opts.MaxIterations, answer.ToolCalls)
				}
				return answer, nil
			}
			rounds++

			messages = append(messages, msg)
			for _, inv := range step.Invocations {
				content, call, err := invoke(ctx, tools, inv)
				if err != nil {
					return answer, err
				}
				c.logger.Debug("tool invoked", "tool", call.Name, "results", call.Results, "error", call.Error)
				answer.ToolCalls = append(answer.ToolCalls, call)
				messages = append(messages, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Content:    content,
					Name:       inv.Name,
					ToolCallID: inv.ID,
				})
			}
		}
	}
}

func (c *Client) withDefaults(opts Options) Options {
	if opts.ModelID == "" {
		opts.ModelID = c.cfg.ModelID
	}
	if opts.ModelID == "" {
		opts.ModelID = DefaultModelID
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = c.cfg.MaxOutputTokens
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = c.cfg.MaxIterations
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	return opts
}

// send issues one completion with retries on rate limiting, 5xx, and
// transport failures.
func (c *Client) send(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionMessage, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = RetryInitialInterval

	tries := uint(c.cfg.MaxRetries) + 1
	if c.cfg.MaxRetries < 0 {
		tries = 1
	}

	resp, err := backoff.Retry(ctx, func() (openai.ChatCompletionResponse, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		resp, err := c.api.CreateChatCompletion(callCtx, req)
		if err != nil {
			c.logger.Debug("completion failed", "model", req.Model, "error", err)
			return resp, retryable(err)
		}
		return resp, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(tries))
	if err != nil {
		if types.KindOf(err) == "" {
			// Retry gave up on the context itself.
			e, _ := classify(err)
			return openai.ChatCompletionMessage{}, e
		}
		return openai.ChatCompletionMessage{}, err
	}

	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, types.Errorf(types.KindModelUnavailable, source, "response has no choices")
	}
	return resp.Choices[0].Message, nil
}

// toolDefinitions describes each adapter as a function tool.
func toolDefinitions(tools []search.Adapter) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	params := search.ArgsSchema()
	defs := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  params,
			},
		})
	}
	return defs
}

// toolResult is the JSON body of a tool message sent back to the model.
type toolResult struct {
	Tool    string         `json:"tool"`
	Count   int            `json:"count"`
	Records []types.Record `json:"records,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// invoke runs one tool call. Unknown tools and malformed arguments are
// reported back to the model as tool errors; adapter failures are returned.
func invoke(ctx context.Context, tools []search.Adapter, inv ToolInvocation) (string, types.ToolCall, error) {
	call := types.ToolCall{Name: inv.Name, Arguments: inv.Arguments}

	adapter, ok := search.Find(tools, inv.Name)
	if !ok {
		call.Error = fmt.Sprintf("unknown tool %q", inv.Name)
		return encodeResult(toolResult{Tool: inv.Name, Error: call.Error}), call, nil
	}

	args, err := search.ParseArgs(inv.Arguments)
	if err != nil {
		call.Error = "invalid arguments: " + err.Error()
		return encodeResult(toolResult{Tool: inv.Name, Error: call.Error}), call, nil
	}

	records, err := adapter.Search(ctx, args.Query, args.MaxResults)
	if err != nil {
		return "", call, err
	}
	call.Results = len(records)
	return encodeResult(toolResult{Tool: inv.Name, Count: len(records), Records: records}), call, nil
}

func encodeResult(r toolResult) string {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"tool":%q,"error":"encoding result failed"}`, r.Tool)
	}
	return string(data)
}

// capNotice is the answer text used when the cap is reached before the
// model produced any prose.
func capNotice(maxIterations int, calls []types.ToolCall) string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range calls {
		if !seen[c.Name] {
			seen[c.Name] = true
			names = append(names, c.Name)
		}
	}
	msg := fmt.Sprintf("No final answer after %d tool rounds.", maxIterations)
	if len(names) > 0 {
		msg += " Tools used: " + strings.Join(names, ", ") + "."
	}
	return msg
}
