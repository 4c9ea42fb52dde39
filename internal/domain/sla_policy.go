package domain

// SLAPolicy is immutable reference data describing the response and
// resolution windows, in minutes, that a ticket is held against.
type SLAPolicy struct {
	ID                   int64
	Name                 string
	ResponseMinMinutes   int
	ResponseMaxMinutes   int
	ResolutionMinMinutes int
	ResolutionMaxMinutes int
}
