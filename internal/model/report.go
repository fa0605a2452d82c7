package model

import "time"

// TicketAnalysis pairs a ticket snapshot with its classification and
// pending-source results.
type TicketAnalysis struct {
	Ticket         Ticket
	Classification ClassificationResult
	Pending        PendingSourceResult
}

// PendingSummary is the consolidated routing signal for a parent ticket
// derived from its children.
type PendingSummary struct {
	LastEvent          time.Time
	RoutedTo           PendingSource
	Sources            []PendingSource
	CoordinationNeeded bool
}

// RelationshipAnalysis is the aggregator's view of a ticket and its
// immediate relatives. Consolidated is nil for non-parent tickets;
// Parent is nil when no parent could be resolved.
type RelationshipAnalysis struct {
	Parent       *Ticket
	Consolidated *PendingSummary
	Main         TicketAnalysis
	Children     []TicketAnalysis
}

// TicketReport is the structured record the core exposes to callers:
// classification, pending source, child summaries, and the ordered
// action list. This is the sole boundary the core guarantees.
type TicketReport struct {
	AnalyzedAt     time.Time
	Consolidated   *PendingSummary
	Parent         *Ticket
	Ticket         Ticket
	Classification ClassificationResult
	Pending        PendingSourceResult
	Children       []TicketAnalysis
	Actions        []Action
	Outcomes       []ExecutionResult
}
