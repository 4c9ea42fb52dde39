package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/sla"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketService covers ticket intake and reads. Intake is deliberately thin:
// it files the ticket as Pendiente and leaves routing to the assignment
// coordinator.
type TicketService struct {
	tickets     repository.TicketRepository
	categories  repository.CategoryRepository
	policies    repository.SLAPolicyRepository
	assignments repository.AssignmentRepository
	transitions repository.TransitionRepository
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	CategoryRepo   repository.CategoryRepository
	PolicyRepo     repository.SLAPolicyRepository
	AssignmentRepo repository.AssignmentRepository
	TransitionRepo repository.TransitionRepository
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes intake payload.
type TicketCreateInput struct {
	Title       string
	Description string
	CategoryID  int64
	SpecialtyID *int64
	Tag         string
	Priority    domain.TicketPriority
}

// TicketDetail is a ticket with its audit history and live urgency.
type TicketDetail struct {
	Ticket         domain.Ticket
	Assignments    []domain.AssignmentRecord
	Transitions    []domain.TransitionRecord
	RemainingHours float64
	Tier           sla.UrgencyTier
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		categories:  deps.CategoryRepo,
		policies:    deps.PolicyRepo,
		assignments: deps.AssignmentRepo,
		transitions: deps.TransitionRepo,
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
	}
}

// CreateTicket files a new Pendiente ticket under the category's SLA policy.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	category, err := s.categories.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		CategoryID:  category.ID,
		SpecialtyID: input.SpecialtyID,
		Tag:         strings.TrimSpace(input.Tag),
		Priority:    input.Priority,
		State:       domain.StatePendiente,
		SLAPolicyID: category.SLAPolicyID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.PriorityMedia
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishCreated(ctx, ticket)
	return ticket, nil
}

// ListTickets returns tickets matching the filter.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a ticket with its full audit history and current urgency.
func (s *TicketService) GetTicket(ctx context.Context, ticketID int64) (*TicketDetail, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	policy, err := s.policies.GetByID(ctx, ticket.SLAPolicyID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	remaining, tier := sla.ComputeUrgency(ticket.CreatedAt, *policy, s.now())

	assignments, err := s.assignments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	transitions, err := s.transitions.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &TicketDetail{
		Ticket:         *ticket,
		Assignments:    assignments,
		Transitions:    transitions,
		RemainingHours: remaining,
		Tier:           tier,
	}, nil
}

func (s *TicketService) publishCreated(ctx context.Context, ticket *domain.Ticket) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		Timestamp: s.now(),
		Payload: events.TicketCreatedPayload{
			CategoryID:  ticket.CategoryID,
			SpecialtyID: ticket.SpecialtyID,
			Priority:    ticket.Priority,
			Title:       ticket.Title,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
