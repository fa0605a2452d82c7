// Package action dispatches auto-executable actions to registered
// handlers and records every attempt in the append-only outcome log.
package action

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/service"
)

// HandlerFunc performs one action against the outside world and returns
// a human-readable outcome message.
type HandlerFunc func(ctx context.Context, ticketID int64, act model.Action) (string, error)

// Registry maps the closed set of action kinds to their handlers.
type Registry struct {
	handlers map[model.ActionKind]HandlerFunc
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[model.ActionKind]HandlerFunc)}
}

// Register installs the handler for an action kind, replacing any
// previous handler.
func (r *Registry) Register(kind model.ActionKind, fn HandlerFunc) {
	r.handlers[kind] = fn
}

// Executor runs actions through the registry. Executions within one
// ticket's action list are sequential so the outcome log stays
// coherently ordered.
type Executor struct {
	now      func() time.Time
	registry *Registry
	log      service.OutcomeLog
}

// NewExecutor creates an executor over the given registry and outcome
// log.
func NewExecutor(registry *Registry, log service.OutcomeLog) *Executor {
	return &Executor{registry: registry, log: log, now: time.Now}
}

// NewExecutorAtTime creates an executor with a fixed clock for tests.
func NewExecutorAtTime(registry *Registry, log service.OutcomeLog, now func() time.Time) *Executor {
	return &Executor{registry: registry, log: log, now: now}
}

// Execute runs a single action. Actions not marked auto-executable are
// never dispatched; unknown kinds yield a non-fatal "not implemented"
// result. Every outcome, success or failure, is appended to the log.
func (e *Executor) Execute(ctx context.Context, ticketID int64, act model.Action) model.ExecutionResult {
	result := model.ExecutionResult{
		ID:        uuid.NewString(),
		TicketID:  ticketID,
		Kind:      act.Kind,
		Timestamp: e.now(),
	}

	switch {
	case !act.AutoExecutable:
		result.Message = "requires manual handling"
	default:
		handler, ok := e.registry.handlers[act.Kind]
		if !ok {
			result.Message = "not implemented"
			break
		}

		msg, err := handler(ctx, ticketID, act)
		if err != nil {
			result.Message = err.Error()
			slog.Warn("action handler failed",
				"ticket_id", ticketID,
				"kind", act.Kind,
				"error", err)
			break
		}
		result.Success = true
		result.Message = msg
	}

	if err := e.log.AppendOutcome(ctx, result); err != nil {
		slog.Error("failed to record action outcome",
			"ticket_id", ticketID,
			"kind", act.Kind,
			"error", err)
	}

	return result
}

// ExecuteAll runs a ticket's action list in order, one at a time. A
// failing action never aborts the remaining ones.
func (e *Executor) ExecuteAll(ctx context.Context, ticketID int64, actions []model.Action) []model.ExecutionResult {
	results := make([]model.ExecutionResult, 0, len(actions))
	for _, act := range actions {
		results = append(results, e.Execute(ctx, ticketID, act))
	}
	return results
}
