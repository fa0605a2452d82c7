package sheets

import (
	"context"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// MockWriter is a mock implementation of service.ReportWriter for
// testing and dry runs.
type MockWriter struct {
	WriteFn func(ctx context.Context, reports []*model.TicketReport) error

	// Call tracking
	Written [][]*model.TicketReport
}

// NewMockWriter creates a new mock report writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, reports []*model.TicketReport) error {
	m.Written = append(m.Written, reports)

	if m.WriteFn != nil {
		return m.WriteFn(ctx, reports)
	}
	return nil
}
