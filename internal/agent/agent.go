// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent binds a model client to a fixed set of search adapters and
// answers one query per Run. It holds no conversation memory; every run is
// independent and errors pass through unchanged.
package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-agent/internal/model"
	"github.com/pdiddy/research-agent/internal/search"
	"github.com/pdiddy/research-agent/pkg/types"
)

// Completer is the model-client capability the agent depends on.
type Completer interface {
	Complete(ctx context.Context, query string, tools []search.Adapter, opts model.Options) (types.Answer, error)
}

// State is the lifecycle of the most recent run.
type State int

const (
	Idle State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Agent is the orchestrator. Create one with New.
type Agent struct {
	name   string
	client Completer
	tools  []search.Adapter
	opts   model.Options
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOptions sets the model options passed on every run.
func WithOptions(o model.Options) Option {
	return func(a *Agent) { a.opts = o }
}

// New returns an agent named name that answers through client with tools bound.
func New(name string, client Completer, tools []search.Adapter, options ...Option) *Agent {
	a := &Agent{
		name:   name,
		client: client,
		tools:  tools,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Name returns the orchestrator name.
func (a *Agent) Name() string { return a.name }

// Tools returns the bound tool names in binding order.
func (a *Agent) Tools() []string {
	names := make([]string, len(a.tools))
	for i, t := range a.tools {
		names[i] = t.Name()
	}
	return names
}

// State reports the lifecycle state of the most recent run.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Agent) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Run answers query. A blank query fails with an EmptyQuery error before any
// network call. Model and adapter errors are returned unchanged; there is no
// retry at this level.
func (a *Agent) Run(ctx context.Context, query string) (types.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Answer{}, types.Errorf(types.KindEmptyQuery, a.name, "no query text")
	}

	runID := uuid.NewString()
	log := a.logger.With("agent", a.name, "run_id", runID)
	a.setState(Running)
	log.Info("run started", "query", query, "tools", a.Tools())
	start := time.Now()

	answer, err := a.client.Complete(ctx, query, a.tools, a.opts)
	if err != nil {
		a.setState(Failed)
		log.Error("run failed", "kind", string(types.KindOf(err)), "error", err, "elapsed", time.Since(start))
		return types.Answer{}, err
	}

	answer.Agent = a.name
	a.setState(Succeeded)
	log.Info("run finished",
		"iterations", answer.Iterations,
		"tool_calls", len(answer.ToolCalls),
		"partial", answer.Partial,
		"elapsed", time.Since(start))
	return answer, nil
}
