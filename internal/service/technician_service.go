package service

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TechnicianService exposes the roster the manual-assignment UI works from.
// Ordering and the specialty-match flag mirror the selector so what the
// caller sees is what autotriage would pick.
type TechnicianService struct {
	technicians repository.TechnicianRepository
}

// NewTechnicianService constructs the service.
func NewTechnicianService(technicians repository.TechnicianRepository) *TechnicianService {
	return &TechnicianService{technicians: technicians}
}

// RosterEntry is a technician annotated for a required specialty.
type RosterEntry struct {
	Technician       domain.Technician
	SpecialtyMatched bool
}

// ListRoster returns available technicians ordered by open load then id. When
// specialtyID is set, matching specialists come first and non-matching
// entries are flagged, preserving the capacity-over-purity fallback the
// selector applies.
func (s *TechnicianService) ListRoster(ctx context.Context, specialtyID *int64) ([]RosterEntry, error) {
	roster, err := s.technicians.ListWithLoad(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	entries := make([]RosterEntry, 0, len(roster))
	for _, tech := range roster {
		if !tech.Available {
			continue
		}
		matched := specialtyID == nil || tech.HasSpecialty(*specialtyID)
		entries = append(entries, RosterEntry{Technician: tech, SpecialtyMatched: matched})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].SpecialtyMatched != entries[j].SpecialtyMatched {
			return entries[i].SpecialtyMatched
		}
		if entries[i].Technician.OpenTickets != entries[j].Technician.OpenTickets {
			return entries[i].Technician.OpenTickets < entries[j].Technician.OpenTickets
		}
		return entries[i].Technician.ID < entries[j].Technician.ID
	})
	return entries, nil
}

// SetAvailability toggles a technician's availability flag.
func (s *TechnicianService) SetAvailability(ctx context.Context, technicianID int64, available bool) (*domain.Technician, error) {
	if err := s.technicians.SetAvailability(ctx, technicianID, available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	technician, err := s.technicians.GetByID(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return technician, nil
}
