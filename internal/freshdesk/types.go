package freshdesk

import (
	"fmt"
	"time"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// apiTicket is the platform's wire representation of a ticket.
type apiTicket struct {
	CustomFields map[string]any `json:"custom_fields"`
	Subject      string         `json:"subject"`
	Description  string         `json:"description_text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	ChildIDs     []int64        `json:"associated_ticket_ids"`
	ID           int64          `json:"id"`
	ParentID     int64          `json:"parent_id"`
	Status       int            `json:"status"`
}

func (t apiTicket) toModel() model.Ticket {
	fields := make(map[string]string, len(t.CustomFields))
	for k, v := range t.CustomFields {
		if v == nil {
			continue
		}
		fields[k] = fmt.Sprint(v)
	}

	return model.Ticket{
		ID:           t.ID,
		Subject:      t.Subject,
		Description:  t.Description,
		Status:       model.Status(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		CustomFields: fields,
		ParentID:     t.ParentID,
		ChildIDs:     t.ChildIDs,
	}
}

// apiConversation is the platform's wire representation of one message
// on a ticket thread.
type apiConversation struct {
	Body      string    `json:"body_text"`
	FromEmail string    `json:"from_email"`
	CreatedAt time.Time `json:"created_at"`
	Incoming  bool      `json:"incoming"`
	Private   bool      `json:"private"`
}

func (c apiConversation) toModel() model.ConversationEntry {
	direction := model.DirectionOutbound
	if c.Incoming {
		direction = model.DirectionInbound
	}

	return model.ConversationEntry{
		Sender:    c.FromEmail,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		Direction: direction,
		Private:   c.Private,
	}
}
