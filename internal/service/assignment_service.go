package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/sla"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AssignmentService coordinates scoring, selection and the assignment commit.
// Both entry points funnel the Pendiente->Asignado step through the lifecycle
// service so the commit is conditional on the ticket still being Pendiente.
type AssignmentService struct {
	tickets          repository.TicketRepository
	technicians      repository.TechnicianRepository
	policies         repository.SLAPolicyRepository
	lifecycle        *LifecycleService
	dispatcher       events.Dispatcher
	logger           *zap.Logger
	justificationMin int
	now              func() time.Time
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	TicketRepo     repository.TicketRepository
	TechnicianRepo repository.TechnicianRepository
	PolicyRepo     repository.SLAPolicyRepository
	Lifecycle      *LifecycleService
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	// JustificationMinChars is the trimmed minimum for manual assignment
	// justifications; zero falls back to 20.
	JustificationMinChars int
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	minChars := deps.JustificationMinChars
	if minChars <= 0 {
		minChars = 20
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		tickets:          deps.TicketRepo,
		technicians:      deps.TechnicianRepo,
		policies:         deps.PolicyRepo,
		lifecycle:        deps.Lifecycle,
		dispatcher:       deps.Dispatcher,
		logger:           logger,
		justificationMin: minChars,
		now:              time.Now,
	}
}

// TicketOutcome reports one ticket's result within an automatic batch.
type TicketOutcome struct {
	TicketID         int64
	Success          bool
	TechnicianID     *int64
	SpecialtyMatched bool
	Snapshot         *domain.ScoreSnapshot
	Tier             sla.UrgencyTier
	Reason           string
}

// BatchResult aggregates an autotriage run.
type BatchResult struct {
	Outcomes       []TicketOutcome
	TotalProcessed int
	TotalSucceeded int
}

type scoredTicket struct {
	ticket   domain.Ticket
	snapshot domain.ScoreSnapshot
	tier     sla.UrgencyTier
}

// AssignAutomatic ranks every Pendiente ticket by score and assigns each in
// descending urgency order. Technician loads are tracked in a batch-local map
// so each selection sees the effect of all prior picks in the same run. A
// failing ticket is reported in its outcome and never aborts the batch.
func (s *AssignmentService) AssignAutomatic(ctx context.Context, actorUserID *int64) (*BatchResult, error) {
	pending, err := s.tickets.ListPending(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := &BatchResult{}
	if len(pending) == 0 {
		return result, nil
	}

	roster, err := s.technicians.ListWithLoad(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	policyCache := map[int64]*domain.SLAPolicy{}
	scored := make([]scoredTicket, 0, len(pending))
	for _, ticket := range pending {
		policy, err := s.policyFor(ctx, policyCache, ticket.SLAPolicyID)
		if err != nil {
			result.Outcomes = append(result.Outcomes, TicketOutcome{
				TicketID: ticket.ID,
				Reason:   apperrors.ToDomainError(err).Code,
			})
			result.TotalProcessed++
			continue
		}
		remaining, tier := sla.ComputeUrgency(ticket.CreatedAt, *policy, now)
		scored = append(scored, scoredTicket{
			ticket:   ticket,
			snapshot: sla.Snapshot(ticket.Priority, remaining),
			tier:     tier,
		})
	}

	// highest urgency first; equal scores resolve by ticket id ascending so
	// batch runs are reproducible
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].snapshot.Score != scored[j].snapshot.Score {
			return scored[i].snapshot.Score > scored[j].snapshot.Score
		}
		return scored[i].ticket.ID < scored[j].ticket.ID
	})

	loads := make(map[int64]int, len(roster))
	for i := range roster {
		loads[roster[i].ID] = roster[i].OpenTickets
	}

	for _, item := range scored {
		result.TotalProcessed++
		outcome := s.assignOne(ctx, item, roster, loads, actorUserID)
		if outcome.Success {
			result.TotalSucceeded++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (s *AssignmentService) assignOne(ctx context.Context, item scoredTicket, roster []domain.Technician, loads map[int64]int, actorUserID *int64) TicketOutcome {
	outcome := TicketOutcome{
		TicketID: item.ticket.ID,
		Snapshot: &item.snapshot,
		Tier:     item.tier,
	}

	// selection must see the loads accumulated so far in this batch
	for i := range roster {
		roster[i].OpenTickets = loads[roster[i].ID]
	}
	selection, err := SelectTechnician(item.ticket.SpecialtyID, roster)
	if err != nil {
		outcome.Reason = apperrors.ToDomainError(err).Code
		return outcome
	}

	observations := fmt.Sprintf("automatic assignment: technician %d selected (score %.2f, tier %s)",
		selection.Technician.ID, item.snapshot.Score, item.tier)
	record, err := s.commit(ctx, item.ticket, selection, domain.AssignmentAutomatic, "", item.snapshot, actorUserID, observations)
	if err != nil {
		s.logger.Warn("autotriage ticket failed",
			zap.Int64("ticket_id", item.ticket.ID),
			zap.Error(err))
		outcome.Reason = apperrors.ToDomainError(err).Code
		return outcome
	}

	loads[selection.Technician.ID]++
	outcome.Success = true
	outcome.TechnicianID = &record.TechnicianID
	outcome.SpecialtyMatched = selection.SpecialtyMatched
	return outcome
}

// AssignManual binds an explicitly chosen technician to a Pendiente ticket.
// The justification is an audit-trail requirement, not a UI nicety. The
// Pendiente re-check happens inside the lifecycle commit; losers of a
// concurrent race get TicketNotPending, never a silent overwrite.
func (s *AssignmentService) AssignManual(ctx context.Context, ticketID, technicianID int64, justification string, actorUserID int64) (*domain.AssignmentRecord, error) {
	justification = strings.TrimSpace(justification)
	if len([]rune(justification)) < s.justificationMin {
		return nil, apperrors.NewValidationError("justification too short", map[string]any{
			"min_chars": s.justificationMin,
		})
	}

	technician, err := s.technicians.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"technician_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if !technician.Available {
		return nil, apperrors.NewConflict("technician unavailable", map[string]any{"technician_id": technicianID})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if ticket.State != domain.StatePendiente {
		return nil, apperrors.NewTicketNotPending(ticket.ID)
	}

	policy, err := s.policyFor(ctx, nil, ticket.SLAPolicyID)
	if err != nil {
		return nil, err
	}
	remaining, _ := sla.ComputeUrgency(ticket.CreatedAt, *policy, s.now())
	snapshot := sla.Snapshot(ticket.Priority, remaining)

	selection := &Selection{
		Technician:       *technician,
		SpecialtyMatched: ticket.SpecialtyID == nil || technician.HasSpecialty(*ticket.SpecialtyID),
	}
	return s.commit(ctx, *ticket, selection, domain.AssignmentManual, justification, snapshot, &actorUserID, justification)
}

func (s *AssignmentService) commit(ctx context.Context, ticket domain.Ticket, selection *Selection, method domain.AssignmentMethod, justification string, snapshot domain.ScoreSnapshot, actorUserID *int64, observations string) (*domain.AssignmentRecord, error) {
	record := &domain.AssignmentRecord{
		TicketID:         ticket.ID,
		TechnicianID:     selection.Technician.ID,
		Method:           method,
		AssignedByUserID: actorUserID,
		Justification:    justification,
		Snapshot:         snapshot,
		SpecialtyMatched: selection.SpecialtyMatched,
	}
	if _, err := s.lifecycle.CommitAssignment(ctx, ticket.ID, selection.Technician.ID, observations, record, actorUserID); err != nil {
		return nil, err
	}

	s.publishAssigned(ctx, actorUserID, *record)
	return record, nil
}

func (s *AssignmentService) policyFor(ctx context.Context, cache map[int64]*domain.SLAPolicy, policyID int64) (*domain.SLAPolicy, error) {
	if cache != nil {
		if policy, ok := cache[policyID]; ok {
			return policy, nil
		}
	}
	policy, err := s.policies.GetByID(ctx, policyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("sla policy", map[string]any{"sla_policy_id": policyID})
		}
		return nil, apperrors.MapError(err)
	}
	if cache != nil {
		cache[policyID] = policy
	}
	return policy, nil
}

func (s *AssignmentService) publishAssigned(ctx context.Context, actorUserID *int64, record domain.AssignmentRecord) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:          uuid.NewString(),
		Type:        events.EventTicketAssigned,
		TicketID:    record.TicketID,
		ActorUserID: actorUserID,
		Timestamp:   s.now(),
		Payload:     events.TicketAssignedPayload{Record: record},
	}
	_ = s.dispatcher.Publish(ctx, event)
}
