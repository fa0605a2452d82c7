package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// SaveReport persists a full analysis report snapshot. The structured
// payload is stored as JSON; the indexed columns exist for querying.
func (s *SQLiteStorage) SaveReport(ctx context.Context, report *model.TicketReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_reports (id, ticket_id, analyzed_at, category, pending_source, confidence, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		report.Ticket.ID,
		report.AnalyzedAt,
		strings.Join(report.Classification.CategoryPath, "/"),
		string(report.Pending.Primary),
		report.Pending.Confidence,
		string(payload))
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// LatestReport returns the most recent report snapshot for a ticket,
// or nil if none exists.
func (s *SQLiteStorage) LatestReport(ctx context.Context, ticketID int64) (*model.TicketReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM analysis_reports
		 WHERE ticket_id = ? ORDER BY analyzed_at DESC LIMIT 1`,
		ticketID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}

	var report model.TicketReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}
