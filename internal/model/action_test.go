package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "URGENT", PriorityUrgent.String())
	assert.Equal(t, "HIGH", PriorityHigh.String())
	assert.Equal(t, "MEDIUM", PriorityMedium.String())
	assert.Equal(t, "LOW", PriorityLow.String())
	assert.Equal(t, "INFO", PriorityInfo.String())
}

func TestSortActions(t *testing.T) {
	actions := []Action{
		{Kind: ActionSendReminder, Priority: PriorityMedium, Description: "a"},
		{Kind: ActionAutoClose, Priority: PriorityUrgent},
		{Kind: ActionTATWarning, Priority: PriorityHigh},
		{Kind: ActionDiagnoseLink, Priority: PriorityMedium, Description: "b"},
	}

	SortActions(actions)

	assert.Equal(t, ActionAutoClose, actions[0].Kind)
	assert.Equal(t, ActionTATWarning, actions[1].Kind)
	// Stable sort keeps the emission order of equal priorities.
	assert.Equal(t, "a", actions[2].Description)
	assert.Equal(t, "b", actions[3].Description)
}

func TestDedupeActions(t *testing.T) {
	actions := []Action{
		{Kind: ActionEscalationRequired, Description: "first"},
		{Kind: ActionSendReminder},
		{Kind: ActionEscalationRequired, Description: "second"},
	}

	deduped := DedupeActions(actions)

	require.Len(t, deduped, 2)
	assert.Equal(t, ActionEscalationRequired, deduped[0].Kind)
	assert.Equal(t, "first", deduped[0].Description)
	assert.Equal(t, ActionSendReminder, deduped[1].Kind)
}

func TestDedupeActions_Empty(t *testing.T) {
	assert.Empty(t, DedupeActions(nil))
	assert.Empty(t, DedupeActions([]Action{}))
}

func TestEscalationMatrix_Validate(t *testing.T) {
	tests := []struct {
		name    string
		matrix  EscalationMatrix
		wantErr bool
	}{
		{
			name: "valid ladder",
			matrix: EscalationMatrix{Category: "Claim", Levels: []EscalationLevel{
				{Level: 1, ThresholdHours: 6},
				{Level: 2, ThresholdHours: 24},
				{Level: 3, ThresholdHours: 48},
			}},
		},
		{
			name: "level numbering gap",
			matrix: EscalationMatrix{Category: "Claim", Levels: []EscalationLevel{
				{Level: 1, ThresholdHours: 6},
				{Level: 3, ThresholdHours: 24},
			}},
			wantErr: true,
		},
		{
			name: "equal thresholds",
			matrix: EscalationMatrix{Category: "Claim", Levels: []EscalationLevel{
				{Level: 1, ThresholdHours: 6},
				{Level: 2, ThresholdHours: 6},
			}},
			wantErr: true,
		},
		{
			name:   "empty ladder is valid",
			matrix: EscalationMatrix{Category: "Claim"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matrix.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEscalationMatrix_LevelFor(t *testing.T) {
	matrix := EscalationMatrix{Category: "Claim", Levels: []EscalationLevel{
		{Level: 1, ThresholdHours: 6},
		{Level: 2, ThresholdHours: 24},
		{Level: 3, ThresholdHours: 48},
	}}

	tests := []struct {
		name      string
		age       float64
		wantLevel int
	}{
		{"below first threshold", 5, 0},
		{"exactly at threshold is not crossed", 6, 0},
		{"just past first", 6.1, 1},
		{"between levels", 30, 2},
		{"all crossed", 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := matrix.LevelFor(tt.age)
			if tt.wantLevel == 0 {
				assert.Nil(t, lvl)
			} else {
				require.NotNil(t, lvl)
				assert.Equal(t, tt.wantLevel, lvl.Level)
			}
		})
	}
}

func TestReminderHistory(t *testing.T) {
	empty := ReminderHistory{}
	assert.True(t, empty.Last().IsZero())
	assert.True(t, empty.Exhausted(0))
	assert.False(t, empty.Exhausted(3))

	first := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(72 * time.Hour)
	history := ReminderHistory{Sent: []time.Time{first, second}}
	assert.Equal(t, second, history.Last())
	assert.False(t, history.Exhausted(3))
	assert.True(t, history.Exhausted(2))
}

func TestClassificationResult_Paths(t *testing.T) {
	result := ClassificationResult{CategoryPath: []string{"Claim", "Motor"}}
	assert.Equal(t, "Claim", result.TopLevel())
	assert.Equal(t, "Motor", result.Category())

	empty := ClassificationResult{}
	assert.Equal(t, "", empty.TopLevel())
	assert.Equal(t, "", empty.Category())
}
