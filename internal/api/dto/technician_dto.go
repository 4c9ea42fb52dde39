package dto

// UpdateAvailabilityRequest payload.
type UpdateAvailabilityRequest struct {
	Available bool `json:"available"`
}

// TechnicianResponse represents a roster entry.
type TechnicianResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Available        bool    `json:"available"`
	SpecialtyIDs     []int64 `json:"specialty_ids"`
	OpenTickets      int     `json:"open_tickets"`
	SpecialtyMatched *bool   `json:"specialty_matched,omitempty"`
}
