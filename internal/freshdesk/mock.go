package freshdesk

import (
	"context"
	"sync"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// MockSource is a mock implementation of service.TicketSource for
// testing and dry runs.
type MockSource struct {
	// Functions that can be set by tests to control behavior
	FetchTicketFn        func(ctx context.Context, id int64) (*model.Ticket, error)
	FetchConversationsFn func(ctx context.Context, id int64) ([]model.ConversationEntry, error)
	FetchChildrenFn      func(ctx context.Context, parentID int64) ([]model.Ticket, error)
	FetchParentFn        func(ctx context.Context, ticket model.Ticket) (*model.Ticket, error)
	UpdateStatusFn       func(ctx context.Context, id int64, status model.Status) error
	PostReplyFn          func(ctx context.Context, id int64, text string) error

	// Call tracking
	StatusUpdates []StatusUpdate
	Replies       []Reply

	mu sync.Mutex
}

// StatusUpdate records the parameters of an UpdateStatus call.
type StatusUpdate struct {
	ID     int64
	Status model.Status
}

// Reply records the parameters of a PostReply call.
type Reply struct {
	Text string
	ID   int64
}

// NewMockSource creates a new mock ticket source.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// FetchTicket implements service.TicketSource.
func (m *MockSource) FetchTicket(ctx context.Context, id int64) (*model.Ticket, error) {
	if m.FetchTicketFn != nil {
		return m.FetchTicketFn(ctx, id)
	}
	return nil, nil
}

// FetchConversations implements service.TicketSource.
func (m *MockSource) FetchConversations(ctx context.Context, id int64) ([]model.ConversationEntry, error) {
	if m.FetchConversationsFn != nil {
		return m.FetchConversationsFn(ctx, id)
	}
	return nil, nil
}

// FetchChildren implements service.TicketSource.
func (m *MockSource) FetchChildren(ctx context.Context, parentID int64) ([]model.Ticket, error) {
	if m.FetchChildrenFn != nil {
		return m.FetchChildrenFn(ctx, parentID)
	}
	return nil, nil
}

// FetchParent implements service.TicketSource.
func (m *MockSource) FetchParent(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	if m.FetchParentFn != nil {
		return m.FetchParentFn(ctx, ticket)
	}
	return nil, nil
}

// UpdateStatus implements service.TicketSource.
func (m *MockSource) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	m.mu.Lock()
	m.StatusUpdates = append(m.StatusUpdates, StatusUpdate{ID: id, Status: status})
	m.mu.Unlock()

	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

// PostReply implements service.TicketSource.
func (m *MockSource) PostReply(ctx context.Context, id int64, text string) error {
	m.mu.Lock()
	m.Replies = append(m.Replies, Reply{ID: id, Text: text})
	m.mu.Unlock()

	if m.PostReplyFn != nil {
		return m.PostReplyFn(ctx, id, text)
	}
	return nil
}
