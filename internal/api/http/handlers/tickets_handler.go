package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket intake, reads and lifecycle transitions.
type TicketsHandler struct {
	tickets   *service.TicketService
	lifecycle *service.LifecycleService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, lifecycle *service.LifecycleService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, lifecycle: lifecycle}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CategoryID == 0 {
		return apperrors.NewValidationError("category_id required", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.Context(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		SpecialtyID: req.SpecialtyID,
		Tag:         req.Tag,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListTickets(c.Context(), parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.GetTicket(c.Context(), ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(detail)})
}

// Transition POST /tickets/:id/transition.
func (h *TicketsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	ticketID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.lifecycle.TransitionState(c.Context(), ticketID, req.TargetState, req.Observations, req.EvidenceIDs, &principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseID(c *fiber.Ctx, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"param": param})
	}
	return id, nil
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if stateStr := c.Query("state"); stateStr != "" {
		for _, part := range strings.Split(stateStr, ",") {
			filter.States = append(filter.States, domain.TicketState(strings.TrimSpace(part)))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		if id, err := strconv.ParseInt(categoryStr, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if technicianStr := c.Query("technician_id"); technicianStr != "" {
		if id, err := strconv.ParseInt(technicianStr, 10, 64); err == nil {
			filter.TechnicianID = &id
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		Title:        ticket.Title,
		CategoryID:   ticket.CategoryID,
		SpecialtyID:  ticket.SpecialtyID,
		Tag:          ticket.Tag,
		Priority:     ticket.Priority,
		State:        ticket.State,
		TechnicianID: ticket.TechnicianID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		ClosedAt:     ticket.ClosedAt,
	}
}

func ticketDetail(detail *service.TicketDetail) dto.TicketDetailResponse {
	assignments := make([]dto.AssignmentResponse, 0, len(detail.Assignments))
	for i := range detail.Assignments {
		assignments = append(assignments, assignmentResponse(&detail.Assignments[i]))
	}
	transitions := make([]dto.TransitionResponse, 0, len(detail.Transitions))
	for _, record := range detail.Transitions {
		transitions = append(transitions, dto.TransitionResponse{
			ID:           record.ID,
			FromState:    record.FromState,
			ToState:      record.ToState,
			Observations: record.Observations,
			EvidenceIDs:  record.EvidenceIDs,
			ActorUserID:  record.ActorUserID,
			CreatedAt:    record.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		TicketSummary:  ticketSummary(&detail.Ticket),
		Description:    detail.Ticket.Description,
		SLAPolicyID:    detail.Ticket.SLAPolicyID,
		RemainingHours: detail.RemainingHours,
		UrgencyTier:    detail.Tier,
		Assignments:    assignments,
		Transitions:    transitions,
	}
}

func assignmentResponse(record *domain.AssignmentRecord) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:               record.ID,
		TicketID:         record.TicketID,
		TechnicianID:     record.TechnicianID,
		Method:           record.Method,
		AssignedByUserID: record.AssignedByUserID,
		Justification:    record.Justification,
		Snapshot: dto.ScoreSnapshotResponse{
			PriorityWeight: record.Snapshot.PriorityWeight,
			RemainingHours: record.Snapshot.RemainingHours,
			Score:          record.Snapshot.Score,
		},
		SpecialtyMatched: record.SpecialtyMatched,
		CreatedAt:        record.CreatedAt,
	}
}
