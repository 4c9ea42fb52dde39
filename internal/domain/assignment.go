package domain

import "time"

// AssignmentMethod distinguishes automatic batch picks from human-directed ones.
type AssignmentMethod string

const (
	AssignmentAutomatic AssignmentMethod = "AUTOMATIC"
	AssignmentManual    AssignmentMethod = "MANUAL"
)

// ScoreSnapshot freezes the inputs and output of the scoring function at the
// moment an assignment was committed.
type ScoreSnapshot struct {
	PriorityWeight int
	RemainingHours float64
	Score          float64
}

// AssignmentRecord is an append-only audit entry. Reassignment appends a new
// record; existing records are never mutated.
type AssignmentRecord struct {
	ID               int64
	TicketID         int64
	TechnicianID     int64
	Method           AssignmentMethod
	AssignedByUserID *int64
	Justification    string
	Snapshot         ScoreSnapshot
	SpecialtyMatched bool
	CreatedAt        time.Time
}
