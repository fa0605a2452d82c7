package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusNew, "New"},
		{StatusOpen, "Open"},
		{StatusPending, "Pending"},
		{StatusResolved, "Resolved"},
		{StatusClosed, "Closed"},
		{StatusWaitingOnChild, "Waiting on Child"},
		{StatusChildTask, "Child Task"},
		{Status(42), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusNew.IsTerminal())
	assert.False(t, StatusOpen.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusWaitingOnChild.IsTerminal())
	assert.False(t, StatusChildTask.IsTerminal())
}

func TestTicket_AgeHours(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      float64
	}{
		{"two days old", now.Add(-48 * time.Hour), 48},
		{"half an hour old", now.Add(-30 * time.Minute), 0.5},
		{"zero timestamp", time.Time{}, 0},
		{"future timestamp", now.Add(time.Hour), 0},
		{"created right now", now, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := Ticket{CreatedAt: tt.createdAt}
			assert.InDelta(t, tt.want, ticket.AgeHours(now), 0.0001)
			assert.GreaterOrEqual(t, ticket.AgeHours(now), 0.0)
		})
	}
}

func TestTicket_ParentChild(t *testing.T) {
	assert.True(t, Ticket{Status: StatusWaitingOnChild}.IsParent())
	assert.True(t, Ticket{Status: StatusChildTask}.IsChild())
	assert.False(t, Ticket{Status: StatusOpen}.IsParent())
	assert.False(t, Ticket{Status: StatusOpen}.IsChild())
}

func TestLatestEntry(t *testing.T) {
	assert.Nil(t, LatestEntry(nil))
	assert.Nil(t, LatestEntry([]ConversationEntry{}))

	entries := []ConversationEntry{
		{Body: "first"},
		{Body: "second"},
		{Body: "third"},
	}
	latest := LatestEntry(entries)
	assert.NotNil(t, latest)
	assert.Equal(t, "third", latest.Body)
}
