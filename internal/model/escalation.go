package model

import (
	"fmt"
	"time"
)

// EscalationLevel is one rung of a category's escalation ladder.
type EscalationLevel struct {
	Contact        string
	Level          int
	ThresholdHours float64
}

// EscalationMatrix is the ordered escalation ladder for one category.
// Thresholds must be strictly increasing by level.
type EscalationMatrix struct {
	Category string
	Levels   []EscalationLevel
}

// Validate ensures levels are declared in ascending order with strictly
// increasing thresholds.
func (m EscalationMatrix) Validate() error {
	for i, lvl := range m.Levels {
		if lvl.Level != i+1 {
			return fmt.Errorf("matrix %q: level %d declared at position %d", m.Category, lvl.Level, i)
		}
		if i > 0 && lvl.ThresholdHours <= m.Levels[i-1].ThresholdHours {
			return fmt.Errorf("matrix %q: threshold at level %d (%.1fh) not greater than level %d (%.1fh)",
				m.Category, lvl.Level, lvl.ThresholdHours, m.Levels[i-1].Level, m.Levels[i-1].ThresholdHours)
		}
	}
	return nil
}

// LevelFor returns the highest level whose threshold the given age has
// crossed, or nil if no threshold is crossed yet.
func (m EscalationMatrix) LevelFor(ageHours float64) *EscalationLevel {
	var crossed *EscalationLevel
	for i := range m.Levels {
		if ageHours > m.Levels[i].ThresholdHours {
			crossed = &m.Levels[i]
		}
	}
	return crossed
}

// ReminderHistory records the reminders already sent to a ticket's
// requester, ordered chronologically.
type ReminderHistory struct {
	Sent []time.Time
}

// Last returns the timestamp of the most recent reminder, or the zero
// time if none were sent.
func (h ReminderHistory) Last() time.Time {
	if len(h.Sent) == 0 {
		return time.Time{}
	}
	return h.Sent[len(h.Sent)-1]
}

// Exhausted reports whether at least steps reminders have been sent.
func (h ReminderHistory) Exhausted(steps int) bool {
	return len(h.Sent) >= steps
}
