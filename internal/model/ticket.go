// Package model defines the core domain models used throughout the application.
package model

import "time"

// Status is the ticketing platform's numeric ticket status.
type Status int

// Ticket status constants. Values 1-5 follow the platform's standard
// status codes; 6 and 7 are the custom statuses used to mark parent and
// child tickets in a service-task relationship.
const (
	StatusNew            Status = 1
	StatusOpen           Status = 2
	StatusPending        Status = 3
	StatusResolved       Status = 4
	StatusClosed         Status = 5
	StatusWaitingOnChild Status = 6
	StatusChildTask      Status = 7
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusOpen:
		return "Open"
	case StatusPending:
		return "Pending"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	case StatusWaitingOnChild:
		return "Waiting on Child"
	case StatusChildTask:
		return "Child Task"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the status ends the ticket's lifecycle.
// Terminal tickets never receive escalation or reminder actions.
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// Ticket is an immutable snapshot of a support ticket taken at the start
// of an analysis pass.
type Ticket struct {
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CustomFields map[string]string
	Subject      string
	Description  string
	ChildIDs     []int64
	ID           int64
	ParentID     int64
	Status       Status
}

// AgeHours returns the ticket age in hours at the given instant.
// A zero or future created_at yields 0; malformed timestamps must never
// produce a negative age.
func (t Ticket) AgeHours(now time.Time) float64 {
	if t.CreatedAt.IsZero() || t.CreatedAt.After(now) {
		return 0
	}
	return now.Sub(t.CreatedAt).Hours()
}

// IsParent reports whether the ticket's status marks it as a parent in
// a parent/child relationship.
func (t Ticket) IsParent() bool {
	return t.Status == StatusWaitingOnChild
}

// IsChild reports whether the ticket's status marks it as a child task.
func (t Ticket) IsChild() bool {
	return t.Status == StatusChildTask
}
