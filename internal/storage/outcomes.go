package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// AppendOutcome records one action execution attempt. The outcome log
// is insert-only: no update or delete statements exist for it.
func (s *SQLiteStorage) AppendOutcome(ctx context.Context, result model.ExecutionResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO action_outcomes (id, ticket_id, kind, success, message, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		result.ID, result.TicketID, string(result.Kind), boolToInt(result.Success), result.Message, result.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append outcome: %w", err)
	}
	return nil
}

// OutcomesForTicket returns a ticket's execution outcomes in
// chronological order.
func (s *SQLiteStorage) OutcomesForTicket(ctx context.Context, ticketID int64) ([]model.ExecutionResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ticket_id, kind, success, message, executed_at
		 FROM action_outcomes WHERE ticket_id = ? ORDER BY executed_at, id`,
		ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ExecutionResult
	for rows.Next() {
		var r model.ExecutionResult
		var kind string
		var success int
		if err := rows.Scan(&r.ID, &r.TicketID, &kind, &success, &r.Message, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		r.Kind = model.ActionKind(kind)
		r.Success = success != 0
		results = append(results, r)
	}
	return results, rows.Err()
}

// ReminderHistory derives a ticket's reminder history from the
// successful SEND_REMINDER outcomes already on record.
func (s *SQLiteStorage) ReminderHistory(ctx context.Context, ticketID int64) (model.ReminderHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT executed_at FROM action_outcomes
		 WHERE ticket_id = ? AND kind = ? AND success = 1
		 ORDER BY executed_at`,
		ticketID, string(model.ActionSendReminder))
	if err != nil {
		return model.ReminderHistory{}, fmt.Errorf("failed to query reminder history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var history model.ReminderHistory
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return model.ReminderHistory{}, fmt.Errorf("failed to scan reminder timestamp: %w", err)
		}
		history.Sent = append(history.Sent, ts)
	}
	return history, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
