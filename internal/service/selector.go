package service

import (
	"sort"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// Selection is the outcome of picking a technician for a ticket.
// SpecialtyMatched is false when the pick fell back to the full available
// roster because no specialist was free; callers surface that as a warning,
// not a failure.
type Selection struct {
	Technician       domain.Technician
	SpecialtyMatched bool
}

// SelectTechnician picks exactly one technician for the given required
// specialty (nil when the ticket has none). Available specialists win first;
// when none is free the full available roster is considered, flagged as a
// specialty mismatch. Within a set the least-loaded technician wins, ties
// broken by technician id ascending. Returns NoTechnicianAvailable when the
// roster has nobody available at all.
func SelectTechnician(specialtyID *int64, roster []domain.Technician) (*Selection, error) {
	available := make([]domain.Technician, 0, len(roster))
	for _, tech := range roster {
		if tech.Available {
			available = append(available, tech)
		}
	}
	if len(available) == 0 {
		return nil, apperrors.NewNoTechnicianAvailable()
	}

	candidates := available
	matched := true
	if specialtyID != nil {
		specialists := make([]domain.Technician, 0, len(available))
		for _, tech := range available {
			if tech.HasSpecialty(*specialtyID) {
				specialists = append(specialists, tech)
			}
		}
		if len(specialists) > 0 {
			candidates = specialists
		} else {
			// capacity over specialty purity: fall back to any available
			// technician and flag the mismatch
			matched = false
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].OpenTickets != candidates[j].OpenTickets {
			return candidates[i].OpenTickets < candidates[j].OpenTickets
		}
		return candidates[i].ID < candidates[j].ID
	})
	return &Selection{Technician: candidates[0], SpecialtyMatched: matched}, nil
}
