package action

import (
	"context"
	"fmt"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/service"
)

// NewDefaultRegistry wires the built-in handlers for every
// auto-executable action kind against the ticketing platform.
func NewDefaultRegistry(src service.TicketSource) *Registry {
	r := NewRegistry()

	r.Register(model.ActionSendReminder, func(ctx context.Context, ticketID int64, act model.Action) (string, error) {
		step := act.Parameters["step"]
		body := "This is a gentle reminder regarding your open ticket. " +
			"We have been unable to reach you; please reply with the requested details so we can proceed."
		if err := src.PostReply(ctx, ticketID, body); err != nil {
			return "", fmt.Errorf("failed to post reminder: %w", err)
		}
		return fmt.Sprintf("reminder %s posted", step), nil
	})

	r.Register(model.ActionAutoClose, func(ctx context.Context, ticketID int64, _ model.Action) (string, error) {
		body := "We are closing this ticket as we could not reach you despite multiple reminders. " +
			"Please raise a new ticket if you still need assistance."
		if err := src.PostReply(ctx, ticketID, body); err != nil {
			return "", fmt.Errorf("failed to post closure note: %w", err)
		}
		if err := src.UpdateStatus(ctx, ticketID, model.StatusClosed); err != nil {
			return "", fmt.Errorf("failed to close ticket: %w", err)
		}
		return "ticket closed after exhausted reminder ladder", nil
	})

	r.Register(model.ActionRequestDocuments, func(ctx context.Context, ticketID int64, act model.Action) (string, error) {
		body := "To process your claim with " + act.Parameters["insurer"] + ", please share: " +
			"the duly filled claim form, policy copy, KYC documents, and all supporting bills or reports."
		if err := src.PostReply(ctx, ticketID, body); err != nil {
			return "", fmt.Errorf("failed to post document request: %w", err)
		}
		return "document checklist requested", nil
	})

	r.Register(model.ActionCheckPaymentStatus, func(ctx context.Context, ticketID int64, _ model.Action) (string, error) {
		body := "We are verifying your payment with the gateway. " +
			"If the amount was debited and the transaction did not complete, it is auto-reversed within 5-7 working days."
		if err := src.PostReply(ctx, ticketID, body); err != nil {
			return "", fmt.Errorf("failed to post payment update: %w", err)
		}
		return "payment verification update posted", nil
	})

	r.Register(model.ActionDiagnoseLink, func(ctx context.Context, ticketID int64, _ model.Action) (string, error) {
		body := "The link you received may have expired. " +
			"A fresh link has been requested and will be shared with you shortly."
		if err := src.PostReply(ctx, ticketID, body); err != nil {
			return "", fmt.Errorf("failed to post link update: %w", err)
		}
		return "link regeneration acknowledged", nil
	})

	return r
}
