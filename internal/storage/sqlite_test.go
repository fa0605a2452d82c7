package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ticket-triage/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("empty path rejected", func(t *testing.T) {
		_, err := NewSQLiteStorage("")
		assert.Error(t, err)
	})

	t.Run("creates parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "triage.db")
		s, err := NewSQLiteStorage(path)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()
		require.NoError(t, s.Migrate(context.Background()))
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStorage(t)
	// A second run finds nothing to apply.
	require.NoError(t, s.Migrate(context.Background()))
}

func TestOutcomeLog(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	outcomes := []model.ExecutionResult{
		{ID: "a", TicketID: 7, Kind: model.ActionSendReminder, Success: true, Message: "reminder 1 posted", Timestamp: base},
		{ID: "b", TicketID: 7, Kind: model.ActionSendReminder, Success: false, Message: "platform down", Timestamp: base.Add(time.Hour)},
		{ID: "c", TicketID: 7, Kind: model.ActionAutoClose, Success: true, Message: "closed", Timestamp: base.Add(2 * time.Hour)},
		{ID: "d", TicketID: 8, Kind: model.ActionSendReminder, Success: true, Message: "other ticket", Timestamp: base},
	}
	for _, o := range outcomes {
		require.NoError(t, s.AppendOutcome(ctx, o))
	}

	t.Run("outcomes returned in execution order", func(t *testing.T) {
		got, err := s.OutcomesForTicket(ctx, 7)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
		assert.Equal(t, "c", got[2].ID)
		assert.True(t, got[0].Success)
		assert.False(t, got[1].Success)
		assert.Equal(t, model.ActionAutoClose, got[2].Kind)
	})

	t.Run("no outcomes for unknown ticket", func(t *testing.T) {
		got, err := s.OutcomesForTicket(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := s.AppendOutcome(ctx, model.ExecutionResult{ID: "a", TicketID: 7, Kind: model.ActionSendReminder, Timestamp: base})
		assert.Error(t, err)
	})
}

func TestReminderHistory(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := []model.ExecutionResult{
		{ID: "r1", TicketID: 7, Kind: model.ActionSendReminder, Success: true, Timestamp: base},
		{ID: "r2", TicketID: 7, Kind: model.ActionSendReminder, Success: false, Timestamp: base.Add(time.Hour)},
		{ID: "r3", TicketID: 7, Kind: model.ActionSendReminder, Success: true, Timestamp: base.Add(72 * time.Hour)},
		{ID: "x1", TicketID: 7, Kind: model.ActionAutoClose, Success: true, Timestamp: base.Add(3 * time.Hour)},
		{ID: "r4", TicketID: 8, Kind: model.ActionSendReminder, Success: true, Timestamp: base},
	}
	for _, o := range seed {
		require.NoError(t, s.AppendOutcome(ctx, o))
	}

	history, err := s.ReminderHistory(ctx, 7)
	require.NoError(t, err)

	// Only successful reminders for this ticket count.
	require.Len(t, history.Sent, 2)
	assert.True(t, history.Sent[0].Equal(base))
	assert.True(t, history.Last().Equal(base.Add(72*time.Hour)))
}

func TestReminderHistory_Empty(t *testing.T) {
	s := newTestStorage(t)

	history, err := s.ReminderHistory(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, history.Sent)
	assert.True(t, history.Last().IsZero())
}

func TestReports(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	t.Run("latest of none is nil", func(t *testing.T) {
		report, err := s.LatestReport(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, report)
	})

	t.Run("round trip keeps the analysis", func(t *testing.T) {
		report := &model.TicketReport{
			AnalyzedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Ticket:     model.Ticket{ID: 7, Subject: "claim status", Status: model.StatusOpen},
			Classification: model.ClassificationResult{
				CategoryPath: []string{"Claim", "Motor"},
				MatchedTier:  "claim",
				Stage:        2,
			},
			Pending: model.PendingSourceResult{
				Primary:    model.SourceInsurer,
				Confidence: 0.8,
				Evidence:   []string{"Keyword \"insurer\" found in ticket text"},
			},
		}
		require.NoError(t, s.SaveReport(ctx, report))

		got, err := s.LatestReport(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"Claim", "Motor"}, got.Classification.CategoryPath)
		assert.Equal(t, model.SourceInsurer, got.Pending.Primary)
		assert.Equal(t, 2, got.Classification.Stage)
	})

	t.Run("latest wins over older snapshots", func(t *testing.T) {
		older := &model.TicketReport{
			AnalyzedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			Ticket:     model.Ticket{ID: 9},
			Pending:    model.PendingSourceResult{Primary: model.SourceCustomer},
		}
		newer := &model.TicketReport{
			AnalyzedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Ticket:     model.Ticket{ID: 9},
			Pending:    model.PendingSourceResult{Primary: model.SourceDealer},
		}
		require.NoError(t, s.SaveReport(ctx, older))
		require.NoError(t, s.SaveReport(ctx, newer))

		got, err := s.LatestReport(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.SourceDealer, got.Pending.Primary)
	})
}
