package model

import "time"

// Direction indicates who authored a conversation entry.
type Direction string

// Conversation direction constants.
const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ConversationEntry is a single message on a ticket thread. Entries
// belong to exactly one ticket; slice order is chronological.
type ConversationEntry struct {
	CreatedAt time.Time
	Sender    string
	Body      string
	Direction Direction
	Private   bool
}

// LatestEntry returns the most recent conversation entry, or nil for an
// empty thread. Insertion order is chronological, so this is simply the
// last element.
func LatestEntry(entries []ConversationEntry) *ConversationEntry {
	if len(entries) == 0 {
		return nil
	}
	return &entries[len(entries)-1]
}
