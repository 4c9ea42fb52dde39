package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AssignmentsHandler exposes manual assignment and the autotriage trigger.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
	metrics     *observability.Metrics
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignments *service.AssignmentService, metrics *observability.Metrics) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments, metrics: metrics}
}

// AssignManual POST /tickets/:id/assign.
func (h *AssignmentsHandler) AssignManual(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ManualAssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == 0 {
		return apperrors.NewValidationError("technician_id required", nil)
	}

	record, err := h.assignments.AssignManual(c.Context(), ticketID, req.TechnicianID, req.Justification, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(record)})
}

// Autotriage POST /assignments/autotriage.
func (h *AssignmentsHandler) Autotriage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	result, err := h.assignments.AssignAutomatic(c.Context(), &principal.User.ID)
	if err != nil {
		return err
	}
	h.metrics.RecordAutotriage(result.TotalProcessed, result.TotalSucceeded)
	return c.JSON(fiber.Map{"data": batchResultResponse(result)})
}

func batchResultResponse(result *service.BatchResult) dto.BatchResultResponse {
	outcomes := make([]dto.BatchOutcomeResponse, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		item := dto.BatchOutcomeResponse{
			TicketID:         outcome.TicketID,
			Success:          outcome.Success,
			TechnicianID:     outcome.TechnicianID,
			SpecialtyMatched: outcome.SpecialtyMatched,
			UrgencyTier:      outcome.Tier,
			Reason:           outcome.Reason,
		}
		if outcome.Snapshot != nil {
			item.Score = &dto.ScoreSnapshotResponse{
				PriorityWeight: outcome.Snapshot.PriorityWeight,
				RemainingHours: outcome.Snapshot.RemainingHours,
				Score:          outcome.Snapshot.Score,
			}
		}
		outcomes = append(outcomes, item)
	}
	return dto.BatchResultResponse{
		Outcomes:       outcomes,
		TotalProcessed: result.TotalProcessed,
		TotalSucceeded: result.TotalSucceeded,
	}
}
