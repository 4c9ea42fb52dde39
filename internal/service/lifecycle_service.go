package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// LifecycleService enforces the ticket state machine. Every state mutation of
// a ticket goes through here, including the Pendiente->Asignado step the
// assignment coordinator commits, so the transition audit trail stays
// single-sourced.
type LifecycleService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	evidence   map[string]bool
	now        func() time.Time
}

// LifecycleDependencies bundles collaborators.
type LifecycleDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	// EvidencePolicy maps "FROM>TO" transition keys to whether evidence
	// images are mandatory. Missing keys mean evidence is optional.
	EvidencePolicy map[string]bool
}

// NewLifecycleService creates the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	return &LifecycleService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		evidence:   deps.EvidencePolicy,
		now:        time.Now,
	}
}

// TransitionKey formats the evidence-policy key for a transition.
func TransitionKey(from, to domain.TicketState) string {
	return fmt.Sprintf("%s>%s", from, to)
}

// TransitionState advances the ticket to target, which must be the single
// legal successor of its current state. Moving a Pendiente ticket to Asignado
// requires a technician binding and is reserved for the assignment
// coordinator.
func (s *LifecycleService) TransitionState(ctx context.Context, ticketID int64, target domain.TicketState, observations string, evidenceIDs []string, actorUserID *int64) (*domain.Ticket, error) {
	return s.transition(ctx, ticketID, target, nil, observations, evidenceIDs, nil, actorUserID)
}

// CommitAssignment performs the Pendiente->Asignado transition binding the
// technician in the same conditional write. The assignment record, when
// given, lands in the same transaction as the state move. A zero-row update
// means another assignment won the race.
func (s *LifecycleService) CommitAssignment(ctx context.Context, ticketID, technicianID int64, observations string, assignment *domain.AssignmentRecord, actorUserID *int64) (*domain.Ticket, error) {
	return s.transition(ctx, ticketID, domain.StateAsignado, &technicianID, observations, nil, assignment, actorUserID)
}

func (s *LifecycleService) transition(ctx context.Context, ticketID int64, target domain.TicketState, technicianID *int64, observations string, evidenceIDs []string, assignment *domain.AssignmentRecord, actorUserID *int64) (*domain.Ticket, error) {
	observations = strings.TrimSpace(observations)
	if observations == "" {
		return nil, apperrors.NewObservationsRequired()
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}

	successor, ok := ticket.State.Next()
	if !ok || successor != target {
		return nil, apperrors.NewIllegalTransition(string(ticket.State), string(target))
	}
	if target == domain.StateAsignado && technicianID == nil {
		return nil, apperrors.NewValidationError("assignment requires a technician; use the assignment operations", nil)
	}
	if s.evidence[TransitionKey(ticket.State, target)] && len(evidenceIDs) == 0 {
		return nil, apperrors.NewEvidenceRequired(TransitionKey(ticket.State, target))
	}

	var closedAt *time.Time
	if target == domain.StateCerrado {
		now := s.now()
		closedAt = &now
	}

	record := &domain.TransitionRecord{
		TicketID:     ticket.ID,
		FromState:    ticket.State,
		ToState:      target,
		Observations: observations,
		EvidenceIDs:  evidenceIDs,
		ActorUserID:  actorUserID,
	}
	change := repository.StateChange{
		TicketID:     ticket.ID,
		FromState:    ticket.State,
		ToState:      target,
		TechnicianID: technicianID,
		ClosedAt:     closedAt,
		Transition:   record,
		Assignment:   assignment,
	}
	if err := s.tickets.ApplyTransition(ctx, change); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// the state moved between our read and the conditional write
			if ticket.State == domain.StatePendiente {
				return nil, apperrors.NewTicketNotPending(ticket.ID)
			}
			return nil, apperrors.NewIllegalTransition(string(ticket.State), string(target))
		}
		return nil, apperrors.MapError(err)
	}

	ticket.State = target
	if technicianID != nil {
		ticket.TechnicianID = technicianID
	}
	if closedAt != nil {
		ticket.ClosedAt = closedAt
	}

	s.publishStateChanged(ctx, actorUserID, ticket.ID, *record)
	return ticket, nil
}

func (s *LifecycleService) publishStateChanged(ctx context.Context, actorUserID *int64, ticketID int64, record domain.TransitionRecord) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:          uuid.NewString(),
		Type:        events.EventTicketStateChanged,
		TicketID:    ticketID,
		ActorUserID: actorUserID,
		Timestamp:   s.now(),
		Payload:     events.TicketStateChangedPayload{Record: record},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
