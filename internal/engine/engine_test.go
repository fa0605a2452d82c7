package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ticket-triage/internal/action"
	"github.com/Veraticus/ticket-triage/internal/common"
	"github.com/Veraticus/ticket-triage/internal/freshdesk"
	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/normalize"
	"github.com/Veraticus/ticket-triage/internal/storage"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

func newTestEngine(t *testing.T, src *freshdesk.MockSource, cfg Config) (*AnalysisEngine, *storage.SQLiteStorage) {
	t.Helper()

	store, err := taxonomy.New(taxonomy.DefaultConfig())
	require.NoError(t, err)

	db, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { _ = db.Close() })

	registry := action.NewDefaultRegistry(src)
	return New(src, normalize.NewHTMLNormalizer(), store, db, registry, cfg), db
}

func openTicket(id int64, subject, description string) *model.Ticket {
	return &model.Ticket{
		ID:          id,
		Subject:     subject,
		Description: description,
		Status:      model.StatusOpen,
		CreatedAt:   time.Now().Add(-2 * time.Hour),
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
}

func TestAnalyzeTicket_EndToEnd(t *testing.T) {
	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(_ context.Context, id int64) (*model.Ticket, error) {
		return openTicket(id, "Aadhaar card update", "<p>Please update my <b>aadhaar</b> card for KYC</p>"), nil
	}
	src.FetchConversationsFn = func(context.Context, int64) ([]model.ConversationEntry, error) {
		return []model.ConversationEntry{
			{Body: "We are waiting for the customer to share the documents", Direction: model.DirectionOutbound},
		}, nil
	}

	eng, db := newTestEngine(t, src, Config{AutoExecute: false})

	report, err := eng.AnalyzeTicket(context.Background(), 4821)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, []string{"Service Request", "Aadhaar Card Update"}, report.Classification.CategoryPath)
	assert.Equal(t, model.SourceCustomer, report.Pending.Primary)
	assert.Greater(t, report.Pending.Confidence, 0.3)
	assert.False(t, report.AnalyzedAt.IsZero())

	// The snapshot is persisted.
	saved, err := db.LatestReport(context.Background(), 4821)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, report.Classification.CategoryPath, saved.Classification.CategoryPath)
}

func TestAnalyzeTicket_InvalidID(t *testing.T) {
	eng, _ := newTestEngine(t, freshdesk.NewMockSource(), Config{})

	_, err := eng.AnalyzeTicket(context.Background(), 0)
	assert.ErrorIs(t, err, common.ErrNoTicketID)

	_, err = eng.AnalyzeTicket(context.Background(), -5)
	assert.ErrorIs(t, err, common.ErrNoTicketID)
}

func TestAnalyzeTicket_UnavailableTicketDegrades(t *testing.T) {
	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(context.Context, int64) (*model.Ticket, error) {
		return nil, errors.New("platform down")
	}

	eng, _ := newTestEngine(t, src, Config{})

	report, err := eng.AnalyzeTicket(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, int64(7), report.Ticket.ID)
	assert.Equal(t, []string{"Uncategorized"}, report.Classification.CategoryPath)
}

func TestAnalyzeTicket_ConversationFailureScoresTicketTextOnly(t *testing.T) {
	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(_ context.Context, id int64) (*model.Ticket, error) {
		return openTicket(id, "Payment failed", "payment failed and the amount debited from my bank"), nil
	}
	src.FetchConversationsFn = func(context.Context, int64) ([]model.ConversationEntry, error) {
		return nil, errors.New("conversations unavailable")
	}

	eng, _ := newTestEngine(t, src, Config{})

	report, err := eng.AnalyzeTicket(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Support Issue", "Payment Failure"}, report.Classification.CategoryPath)
}

func TestAnalyzeTicket_AutoExecute(t *testing.T) {
	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(_ context.Context, id int64) (*model.Ticket, error) {
		ticket := openTicket(id, "Payment failed", "payment failed, amount debited")
		return ticket, nil
	}

	t.Run("enabled executes auto actions and logs outcomes", func(t *testing.T) {
		eng, db := newTestEngine(t, src, Config{AutoExecute: true})

		report, err := eng.AnalyzeTicket(context.Background(), 7)
		require.NoError(t, err)

		// The payment diagnostic is auto-executable and posts a reply.
		require.NotEmpty(t, report.Outcomes)
		assert.Equal(t, model.ActionCheckPaymentStatus, report.Outcomes[0].Kind)
		assert.True(t, report.Outcomes[0].Success)

		logged, err := db.OutcomesForTicket(context.Background(), 7)
		require.NoError(t, err)
		assert.NotEmpty(t, logged)
	})

	t.Run("disabled leaves actions unexecuted", func(t *testing.T) {
		eng, db := newTestEngine(t, src, Config{AutoExecute: false})

		report, err := eng.AnalyzeTicket(context.Background(), 8)
		require.NoError(t, err)

		assert.Empty(t, report.Outcomes)
		logged, err := db.OutcomesForTicket(context.Background(), 8)
		require.NoError(t, err)
		assert.Empty(t, logged)
	})
}

func TestAnalyzeTicket_ParentAggregatesChildren(t *testing.T) {
	base := time.Now().Add(-24 * time.Hour)

	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(_ context.Context, id int64) (*model.Ticket, error) {
		return &model.Ticket{
			ID:        id,
			Subject:   "Policy issuance",
			Status:    model.StatusWaitingOnChild,
			CreatedAt: base,
			UpdatedAt: base,
		}, nil
	}
	src.FetchChildrenFn = func(context.Context, int64) ([]model.Ticket, error) {
		return []model.Ticket{
			{ID: 101, Subject: "Insurer approval", Description: "pending with the insurer", Status: model.StatusChildTask, CreatedAt: base, UpdatedAt: base.Add(time.Hour)},
			{ID: 102, Subject: "Customer documents", Description: "waiting for the customer to respond", Status: model.StatusChildTask, CreatedAt: base, UpdatedAt: base.Add(2 * time.Hour)},
		}, nil
	}

	eng, _ := newTestEngine(t, src, Config{})

	report, err := eng.AnalyzeTicket(context.Background(), 100)
	require.NoError(t, err)

	require.Len(t, report.Children, 2)
	require.NotNil(t, report.Consolidated)
	assert.Equal(t, model.SourceCustomer, report.Consolidated.RoutedTo)
	assert.True(t, report.Consolidated.CoordinationNeeded)
}

func TestAnalyzeSnapshot_NormalizesBeforeScoring(t *testing.T) {
	src := freshdesk.NewMockSource()
	eng, _ := newTestEngine(t, src, Config{})

	ticket := model.Ticket{
		ID:          5,
		Subject:     "Endorsement status",
		Description: "<div>forwarded to <b>HDFC Ergo</b> insurance</div>",
		Status:      model.StatusOpen,
	}

	analysis := eng.AnalyzeSnapshot(context.Background(), ticket)
	assert.Equal(t, model.SourceInsurer, analysis.Pending.Primary)
}

func TestAnalyzeBatch(t *testing.T) {
	src := freshdesk.NewMockSource()
	src.FetchTicketFn = func(_ context.Context, id int64) (*model.Ticket, error) {
		if id == 3 {
			return nil, errors.New("gone")
		}
		return openTicket(id, "renewal", "policy renewal question"), nil
	}

	eng, _ := newTestEngine(t, src, Config{})

	var mu sync.Mutex
	var done []int64
	results := eng.AnalyzeBatch(context.Background(), []int64{1, 2, 3, 4}, 2, func(res BatchResult) {
		mu.Lock()
		done = append(done, res.TicketID)
		mu.Unlock()
	})

	require.Len(t, results, 4)
	// Results keep the input order even with concurrent workers.
	for i, want := range []int64{1, 2, 3, 4} {
		assert.Equal(t, want, results[i].TicketID)
	}
	// The unfetchable ticket still degrades to a report, not an error.
	assert.NoError(t, results[2].Err)
	assert.NotNil(t, results[2].Report)

	assert.Len(t, done, 4)
}
