package domain

import "time"

// TransitionRecord is an append-only audit entry for a single state change.
// The full sequence of records forms the ticket's lifecycle history.
type TransitionRecord struct {
	ID           int64
	TicketID     int64
	FromState    TicketState
	ToState      TicketState
	Observations string
	EvidenceIDs  []string
	ActorUserID  *int64
	CreatedAt    time.Time
}
