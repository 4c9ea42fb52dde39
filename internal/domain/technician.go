package domain

import "time"

// Technician models a support technician eligible for ticket assignment.
// OpenTickets is derived: it is recomputed from the ticket table on read and
// never persisted, so concurrent assignment attempts cannot see a drifted
// cached value.
type Technician struct {
	ID           int64
	Name         string
	Email        string
	Available    bool
	SpecialtyIDs []int64
	OpenTickets  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSpecialty reports whether the technician carries the given specialty.
func (t Technician) HasSpecialty(specialtyID int64) bool {
	for _, id := range t.SpecialtyIDs {
		if id == specialtyID {
			return true
		}
	}
	return false
}
