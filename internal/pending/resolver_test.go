package pending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ticket-triage/internal/model"
	"github.com/Veraticus/ticket-triage/internal/taxonomy"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	store, err := taxonomy.New(taxonomy.DefaultConfig())
	require.NoError(t, err)
	return New(store)
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		status      model.Status
		wantPrimary model.PendingSource
	}{
		{
			name:        "insurer keyword",
			text:        "The case is pending with the insurance company",
			status:      model.StatusOpen,
			wantPrimary: model.SourceInsurer,
		},
		{
			name:        "customer pattern",
			text:        "We are waiting for the customer to share the documents",
			status:      model.StatusOpen,
			wantPrimary: model.SourceCustomer,
		},
		{
			name:        "surveyor keyword and pattern",
			text:        "Surveyor assigned, awaiting the survey report",
			status:      model.StatusOpen,
			wantPrimary: model.SourceSurveyor,
		},
		{
			name:        "garage pattern",
			text:        "The vehicle is at the workshop, estimate from the garage is due",
			status:      model.StatusOpen,
			wantPrimary: model.SourceGarage,
		},
		{
			name:        "tech team escalation",
			text:        "This was escalated to the tech team as a production issue",
			status:      model.StatusOpen,
			wantPrimary: model.SourceTechSupport,
		},
	}

	r := newTestResolver(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(tt.text, nil, tt.status)
			assert.Equal(t, tt.wantPrimary, result.Primary)
			assert.Greater(t, result.Confidence, 0.3)
			assert.NotEmpty(t, result.Evidence)
		})
	}
}

func TestResolver_StatusFallback(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name        string
		status      model.Status
		wantPrimary model.PendingSource
	}{
		{"pending status routes to customer", model.StatusPending, model.SourceCustomer},
		{"new status routes to internal team", model.StatusNew, model.SourceInternalTeam},
		{"open status routes to internal team", model.StatusOpen, model.SourceInternalTeam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve("no relevant signal here", nil, tt.status)
			assert.Equal(t, tt.wantPrimary, result.Primary)
			assert.InDelta(t, 0.3, result.Confidence, 0.0001)
			assert.Equal(t, []string{StatusOnlyEvidence}, result.Evidence)
		})
	}
}

func TestResolver_RecencyBonus(t *testing.T) {
	r := newTestResolver(t)

	conversations := []model.ConversationEntry{
		{
			Body:      "Thanks for reaching out, we are looking into it",
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			Direction: model.DirectionOutbound,
		},
		{
			Body:      "The request has been forwarded to HDFC Ergo insurance for processing",
			CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			Direction: model.DirectionOutbound,
		},
	}

	text := "Policy endorsement status\nThe request has been forwarded to HDFC Ergo insurance for processing"

	result := r.Resolve(text, conversations, model.StatusOpen)

	assert.Equal(t, model.SourceInsurer, result.Primary)
	// Keyword in text, pattern hit, and keyword again in the latest
	// entry push the score past the divisor.
	assert.Equal(t, 1.0, result.Confidence)
	assert.NotEmpty(t, result.Evidence)
}

func TestResolver_LatestEntryOnlyGetsRecency(t *testing.T) {
	r := newTestResolver(t)

	// The insurer mention is in an older entry; only the latest entry
	// earns the recency bonus, so the dealer mention there wins the tie
	// breaker through its own score.
	conversations := []model.ConversationEntry{
		{Body: "forwarded to the insurer", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Body: "pending with the dealer now", CreatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	result := r.Resolve("insurer and dealer are both involved", conversations, model.StatusOpen)

	// Both have a text keyword hit (2 each); dealer adds the recency
	// bonus from the latest entry.
	assert.GreaterOrEqual(t, result.AllScores[model.SourceDealer], result.AllScores[model.SourceInsurer])
}

func TestResolver_ConfidenceBounds(t *testing.T) {
	r := newTestResolver(t)

	// Heavy insurer signal must clamp at 1.0.
	text := "insurer insurance company hdfc ergo icici lombard underwriter, " +
		"forwarded to the insurer, raised with the insurer, pending with the insurer"
	result := r.Resolve(text, nil, model.StatusOpen)
	assert.Equal(t, model.SourceInsurer, result.Primary)
	assert.Equal(t, 1.0, result.Confidence)

	// Status fallback sits at the fixed floor.
	result = r.Resolve("", nil, model.StatusPending)
	assert.InDelta(t, 0.3, result.Confidence, 0.0001)
}

func TestResolver_Deterministic(t *testing.T) {
	r := newTestResolver(t)

	text := "surveyor appointed and the customer has not responded"
	first := r.Resolve(text, nil, model.StatusOpen)
	for i := 0; i < 10; i++ {
		again := r.Resolve(text, nil, model.StatusOpen)
		assert.Equal(t, first.Primary, again.Primary)
		assert.Equal(t, first.Confidence, again.Confidence)
		assert.Equal(t, first.AllScores, again.AllScores)
	}
}

func TestResolver_AllScoresCoverEveryCandidate(t *testing.T) {
	r := newTestResolver(t)

	result := r.Resolve("no signal", nil, model.StatusOpen)
	for _, src := range []model.PendingSource{
		model.SourceCustomer,
		model.SourceInsurer,
		model.SourceDealer,
		model.SourceSurveyor,
		model.SourceGarage,
		model.SourceTechSupport,
	} {
		assert.Contains(t, result.AllScores, src)
		assert.Zero(t, result.AllScores[src])
	}
}

func TestPendingSourceResult_EvidencePreview(t *testing.T) {
	result := model.PendingSourceResult{
		Evidence: []string{"a", "b", "c", "d", "e"},
	}
	assert.Len(t, result.EvidencePreview(), model.EvidencePreviewLimit)

	short := model.PendingSourceResult{Evidence: []string{"a"}}
	assert.Equal(t, []string{"a"}, short.EvidencePreview())
}
