package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TechniciansHandler exposes the roster backing the manual-assignment UI.
type TechniciansHandler struct {
	technicians *service.TechnicianService
}

// NewTechniciansHandler constructs handler.
func NewTechniciansHandler(technicians *service.TechnicianService) *TechniciansHandler {
	return &TechniciansHandler{technicians: technicians}
}

// ListRoster GET /technicians.
func (h *TechniciansHandler) ListRoster(c *fiber.Ctx) error {
	var specialtyID *int64
	if specialtyStr := c.Query("specialty_id"); specialtyStr != "" {
		id, err := strconv.ParseInt(specialtyStr, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid specialty_id", nil)
		}
		specialtyID = &id
	}

	entries, err := h.technicians.ListRoster(c.Context(), specialtyID)
	if err != nil {
		return err
	}
	items := make([]dto.TechnicianResponse, 0, len(entries))
	for _, entry := range entries {
		item := dto.TechnicianResponse{
			ID:           entry.Technician.ID,
			Name:         entry.Technician.Name,
			Email:        entry.Technician.Email,
			Available:    entry.Technician.Available,
			SpecialtyIDs: entry.Technician.SpecialtyIDs,
			OpenTickets:  entry.Technician.OpenTickets,
		}
		if specialtyID != nil {
			matched := entry.SpecialtyMatched
			item.SpecialtyMatched = &matched
		}
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateAvailability PATCH /technicians/:id/availability.
func (h *TechniciansHandler) UpdateAvailability(c *fiber.Ctx) error {
	technicianID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	technician, err := h.technicians.SetAvailability(c.Context(), technicianID, req.Available)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TechnicianResponse{
		ID:           technician.ID,
		Name:         technician.Name,
		Email:        technician.Email,
		Available:    technician.Available,
		SpecialtyIDs: technician.SpecialtyIDs,
		OpenTickets:  technician.OpenTickets,
	}})
}
