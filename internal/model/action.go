package model

import (
	"sort"
	"time"
)

// Priority orders actions for presentation. Higher values are more
// urgent.
type Priority int

// Action priorities, lowest to highest.
const (
	PriorityInfo Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "URGENT"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "INFO"
	}
}

// ActionKind is the closed set of action variants the executor can
// dispatch. Handlers are registered per kind; there is no free-form
// method-name dispatch.
type ActionKind string

// Action kinds.
const (
	ActionContactCustomer    ActionKind = "CONTACT_CUSTOMER"
	ActionManualAcknowledge  ActionKind = "MANUAL_ACKNOWLEDGEMENT"
	ActionSendReminder       ActionKind = "SEND_REMINDER"
	ActionEscalationRequired ActionKind = "ESCALATION_REQUIRED"
	ActionAutoClose          ActionKind = "AUTO_CLOSE"
	ActionRequestDocuments   ActionKind = "REQUEST_DOCUMENTS"
	ActionTATWarning         ActionKind = "TAT_WARNING"
	ActionCheckPaymentStatus ActionKind = "CHECK_PAYMENT_STATUS"
	ActionDiagnoseLink       ActionKind = "DIAGNOSE_LINK"
)

// Action is a single time-bound step the system recommends or performs
// for a ticket.
type Action struct {
	Deadline       *time.Time
	Parameters     map[string]string
	Kind           ActionKind
	Description    string
	Priority       Priority
	AutoExecutable bool
}

// ExecutionResult records one execution attempt, successful or not.
// Results are append-only; the outcome log is never mutated in place.
type ExecutionResult struct {
	Timestamp time.Time
	ID        string
	Kind      ActionKind
	Message   string
	TicketID  int64
	Success   bool
}

// SortActions orders actions by descending priority. The sort is
// stable, so equal-priority actions keep their emission order.
func SortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority > actions[j].Priority
	})
}

// DedupeActions keeps the first action of each kind, preserving order.
func DedupeActions(actions []Action) []Action {
	seen := make(map[ActionKind]bool, len(actions))
	out := actions[:0:0]
	for _, a := range actions {
		if seen[a.Kind] {
			continue
		}
		seen[a.Kind] = true
		out = append(out, a)
	}
	return out
}
