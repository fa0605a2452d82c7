// Package escalation computes time-bound actions for analyzed tickets:
// escalations against the category's threshold ladder, contact and
// reminder obligations, and the auto-closure rule.
package escalation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

// Time rules for claims handling.
const (
	immediateContactHours = 1
	manualAckHours        = 2
	tatWarningFraction    = 0.75
	autoCloseFloorHours   = 168
)

// ContactStateField is the custom field carrying the requester's
// contact state; the reminder ladder starts once it reads
// ContactStateNotContactable.
const (
	ContactStateField          = "contact_status"
	ContactStateNotContactable = "not_contactable"
)

// Engine evaluates a ticket's age against its category's escalation
// matrix and the category-specific action templates.
type Engine struct {
	now   func() time.Time
	store *taxonomy.Store
}

// New creates an escalation engine over the given taxonomy.
func New(store *taxonomy.Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// NewAtTime creates an engine with a fixed clock, for deterministic
// evaluation in tests and replays.
func NewAtTime(store *taxonomy.Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// Evaluate returns the prioritized, deduplicated action list for a
// ticket. Terminal statuses suppress all escalation and reminder
// actions unconditionally.
func (e *Engine) Evaluate(result model.ClassificationResult, ticket model.Ticket, history model.ReminderHistory) []model.Action {
	if ticket.Status.IsTerminal() {
		return nil
	}

	now := e.now()
	if ticket.CreatedAt.IsZero() {
		slog.Warn("ticket has no creation timestamp, treating age as zero",
			"ticket_id", ticket.ID)
	}
	age := ticket.AgeHours(now)

	var actions []model.Action

	matrix := e.store.MatrixFor(result.TopLevel())
	if lvl := matrix.LevelFor(age); lvl != nil {
		actions = append(actions, escalationAction(*lvl, age))
	}

	switch result.TopLevel() {
	case "Claim":
		actions = append(actions, e.claimActions(ticket, age, history, now)...)
	case "Endorsement":
		actions = append(actions, tatWarningActions(result, age)...)
	case "Support Issue":
		actions = append(actions, diagnosticActions(result)...)
	}

	actions = model.DedupeActions(actions)
	model.SortActions(actions)
	return actions
}

// escalationAction emits the single action for the highest crossed
// threshold level. Only one escalation action exists per evaluation:
// lower crossed levels are implied, never duplicated.
func escalationAction(lvl model.EscalationLevel, age float64) model.Action {
	priority := model.PriorityMedium
	switch {
	case lvl.Level >= 3:
		priority = model.PriorityUrgent
	case lvl.Level == 2:
		priority = model.PriorityHigh
	}

	return model.Action{
		Kind:        model.ActionEscalationRequired,
		Priority:    priority,
		Description: fmt.Sprintf("Escalate to %s (level %d threshold of %.0fh crossed at %.0fh)", lvl.Contact, lvl.Level, lvl.ThresholdHours, age),
		Parameters: map[string]string{
			"level":   fmt.Sprintf("%d", lvl.Level),
			"contact": lvl.Contact,
		},
	}
}

// claimActions covers the claims-specific templates: immediate contact
// on fresh tickets, the manual acknowledgment window, the PSU-insurer
// document request, and the not-contactable reminder ladder.
func (e *Engine) claimActions(ticket model.Ticket, age float64, history model.ReminderHistory, now time.Time) []model.Action {
	var actions []model.Action

	if ticket.Status == model.StatusNew && age < immediateContactHours {
		deadline := ticket.CreatedAt.Add(immediateContactHours * time.Hour)
		actions = append(actions, model.Action{
			Kind:        model.ActionContactCustomer,
			Priority:    model.PriorityUrgent,
			Description: "Contact the customer within the 1 hour claim intimation target",
			Deadline:    &deadline,
		})
	}

	if age < manualAckHours {
		deadline := ticket.CreatedAt.Add(manualAckHours * time.Hour)
		actions = append(actions, model.Action{
			Kind:        model.ActionManualAcknowledge,
			Priority:    model.PriorityHigh,
			Description: "Send a manual acknowledgment within the 2 hour window",
			Deadline:    &deadline,
		})
	}

	if insurer := e.psuInsurer(ticket.Subject); insurer != "" {
		actions = append(actions, model.Action{
			Kind:           model.ActionRequestDocuments,
			Priority:       model.PriorityHigh,
			AutoExecutable: true,
			Description:    "Request the claim document checklist required by the public-sector insurer",
			Parameters:     map[string]string{"insurer": insurer},
		})
	}

	if ticket.CustomFields[ContactStateField] == ContactStateNotContactable {
		actions = append(actions, e.reminderLadder(ticket, age, history, now)...)
	}

	return actions
}

// reminderLadder walks the not-contactable reminder schedule. Steps are
// cumulative offsets from creation; once all steps are sent and the
// auto-close floor has passed since the last reminder, the ticket is
// closed automatically. Auto-closure never fires before 168 hours of
// ticket age, regardless of other signals.
func (e *Engine) reminderLadder(ticket model.Ticket, age float64, history model.ReminderHistory, now time.Time) []model.Action {
	ladder := e.store.ReminderLadder()
	if len(ladder) == 0 {
		return nil
	}

	if history.Exhausted(len(ladder)) {
		last := history.Last()
		sinceLast := now.Sub(last).Hours()
		if !last.IsZero() && sinceLast >= autoCloseFloorHours && age >= autoCloseFloorHours {
			return []model.Action{{
				Kind:           model.ActionAutoClose,
				Priority:       model.PriorityUrgent,
				AutoExecutable: true,
				Description:    "Close the ticket: reminder ladder exhausted with no customer response",
				Parameters:     map[string]string{"reminders_sent": fmt.Sprintf("%d", len(history.Sent))},
			}}
		}
		return nil
	}

	step := len(history.Sent)
	due := 0.0
	for i := 0; i <= step; i++ {
		due += ladder[i]
	}
	if age <= due {
		return nil
	}

	return []model.Action{{
		Kind:           model.ActionSendReminder,
		Priority:       model.PriorityMedium,
		AutoExecutable: true,
		Description:    fmt.Sprintf("Send reminder %d of %d to the not-contactable customer", step+1, len(ladder)),
		Parameters:     map[string]string{"step": fmt.Sprintf("%d", step+1)},
	}}
}

// tatWarningActions warns once 75% of the endorsement TAT has elapsed.
func tatWarningActions(result model.ClassificationResult, age float64) []model.Action {
	tat := result.SOP.TATHours
	if tat <= 0 || age < tat*tatWarningFraction {
		return nil
	}

	return []model.Action{{
		Kind:        model.ActionTATWarning,
		Priority:    model.PriorityHigh,
		Description: fmt.Sprintf("Endorsement has consumed %.0f%% of its %.0fh TAT", age/tat*100, tat),
		Parameters: map[string]string{
			"tat_hours":     fmt.Sprintf("%.0f", tat),
			"elapsed_hours": fmt.Sprintf("%.0f", age),
		},
	}}
}

// diagnosticActions emits the support-issue diagnostic templates.
func diagnosticActions(result model.ClassificationResult) []model.Action {
	switch result.Category() {
	case "Payment Failure":
		return []model.Action{{
			Kind:           model.ActionCheckPaymentStatus,
			Priority:       model.PriorityMedium,
			AutoExecutable: true,
			Description:    "Check the payment gateway for the reported transaction",
		}}
	case "Link Not Working":
		return []model.Action{{
			Kind:           model.ActionDiagnoseLink,
			Priority:       model.PriorityMedium,
			AutoExecutable: true,
			Description:    "Diagnose the reported link and regenerate it if expired",
		}}
	}
	return nil
}

func (e *Engine) psuInsurer(subject string) string {
	lower := strings.ToLower(subject)
	for _, name := range e.store.PSUInsurers() {
		if strings.Contains(lower, name) {
			return name
		}
	}
	return ""
}
