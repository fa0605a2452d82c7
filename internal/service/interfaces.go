// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// TicketSource is the external ticketing platform. Implementations
// return (nil, nil) for tickets that do not exist: the core treats
// absence as "unavailable", never as an error to propagate.
type TicketSource interface {
	FetchTicket(ctx context.Context, id int64) (*model.Ticket, error)
	FetchConversations(ctx context.Context, id int64) ([]model.ConversationEntry, error)
	FetchChildren(ctx context.Context, parentID int64) ([]model.Ticket, error)
	FetchParent(ctx context.Context, ticket model.Ticket) (*model.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
	PostReply(ctx context.Context, id int64, body string) error
}

// TextNormalizer strips markup from raw message bodies before scoring.
// Implementations must be pure functions of their input.
type TextNormalizer interface {
	Normalize(raw string) string
}

// OutcomeLog is the append-only record of action execution attempts.
// There is no update or delete operation.
type OutcomeLog interface {
	AppendOutcome(ctx context.Context, result model.ExecutionResult) error
	OutcomesForTicket(ctx context.Context, ticketID int64) ([]model.ExecutionResult, error)
	ReminderHistory(ctx context.Context, ticketID int64) (model.ReminderHistory, error)
}

// ReportStore persists analysis report snapshots.
type ReportStore interface {
	SaveReport(ctx context.Context, report *model.TicketReport) error
	LatestReport(ctx context.Context, ticketID int64) (*model.TicketReport, error)
}

// Storage is the full persistence contract backing the engine.
type Storage interface {
	OutcomeLog
	ReportStore

	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter exports analyzed tickets to an external report surface.
type ReportWriter interface {
	Write(ctx context.Context, reports []*model.TicketReport) error
}

// ResponseDrafter generates free-text reply drafts. The core's
// classification, routing, and escalation logic never depends on its
// availability.
type ResponseDrafter interface {
	DraftReply(ctx context.Context, report *model.TicketReport, instruction string) (string, error)
}

// RetryOptions configures retry behavior for external collaborator
// calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
