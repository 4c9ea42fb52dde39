package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory fakes mirroring the Postgres repositories. The ticket fake
// reproduces the compare-and-set plus same-transaction audit appends of
// ApplyTransition so race and rollback behavior can be exercised without a
// database.

type fakeTicketRepo struct {
	mu          sync.Mutex
	nextID      int64
	tickets     map[int64]*domain.Ticket
	transitions *fakeTransitionRepo
	assignments *fakeAssignmentRepo
	// auditErr makes ApplyTransition fail after the compare-and-set check,
	// standing in for an audit insert failing and rolling the move back.
	auditErr error
}

func newFakeTicketRepo(transitions *fakeTransitionRepo, assignments *fakeAssignmentRepo) *fakeTicketRepo {
	return &fakeTicketRepo{
		nextID:      1,
		tickets:     map[int64]*domain.Ticket{},
		transitions: transitions,
		assignments: assignments,
	}
}

func (r *fakeTicketRepo) put(ticket domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID >= r.nextID {
		r.nextID = ticket.ID + 1
	}
	copied := ticket
	r.tickets[ticket.ID] = &copied
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = r.nextID
	r.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if len(filter.States) > 0 {
			found := false
			for _, state := range filter.States {
				if ticket.State == state {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) ListPending(ctx context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Ticket
	for id := int64(1); id < r.nextID; id++ {
		if ticket, ok := r.tickets[id]; ok && ticket.State == domain.StatePendiente {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) ApplyTransition(ctx context.Context, change repository.StateChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[change.TicketID]
	if !ok || ticket.State != change.FromState {
		return pgx.ErrNoRows
	}
	if r.auditErr != nil {
		return r.auditErr
	}
	ticket.State = change.ToState
	if change.TechnicianID != nil {
		ticket.TechnicianID = change.TechnicianID
	}
	if change.ClosedAt != nil {
		ticket.ClosedAt = change.ClosedAt
	}
	ticket.UpdatedAt = time.Now()
	if change.Transition != nil && r.transitions != nil {
		r.transitions.append(change.Transition)
	}
	if change.Assignment != nil && r.assignments != nil {
		r.assignments.append(change.Assignment)
	}
	return nil
}

type fakeTechnicianRepo struct {
	mu          sync.Mutex
	technicians map[int64]*domain.Technician
}

func newFakeTechnicianRepo(technicians ...domain.Technician) *fakeTechnicianRepo {
	repo := &fakeTechnicianRepo{technicians: map[int64]*domain.Technician{}}
	for _, tech := range technicians {
		copied := tech
		repo.technicians[tech.ID] = &copied
	}
	return repo
}

func (r *fakeTechnicianRepo) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech, ok := r.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *tech
	return &copied, nil
}

func (r *fakeTechnicianRepo) ListWithLoad(ctx context.Context) ([]domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Technician
	for id := int64(0); id <= 1000; id++ {
		if tech, ok := r.technicians[id]; ok {
			result = append(result, *tech)
		}
	}
	return result, nil
}

func (r *fakeTechnicianRepo) SetAvailability(ctx context.Context, id int64, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech, ok := r.technicians[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tech.Available = available
	return nil
}

type fakePolicyRepo struct {
	policies map[int64]domain.SLAPolicy
}

func newFakePolicyRepo(policies ...domain.SLAPolicy) *fakePolicyRepo {
	repo := &fakePolicyRepo{policies: map[int64]domain.SLAPolicy{}}
	for _, policy := range policies {
		repo.policies[policy.ID] = policy
	}
	return repo
}

func (r *fakePolicyRepo) GetByID(ctx context.Context, id int64) (*domain.SLAPolicy, error) {
	policy, ok := r.policies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &policy, nil
}

func (r *fakePolicyRepo) List(ctx context.Context) ([]domain.SLAPolicy, error) {
	var result []domain.SLAPolicy
	for _, policy := range r.policies {
		result = append(result, policy)
	}
	return result, nil
}

type fakeAssignmentRepo struct {
	mu      sync.Mutex
	records []domain.AssignmentRecord
}

func (r *fakeAssignmentRepo) append(record *domain.AssignmentRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = int64(len(r.records) + 1)
	record.CreatedAt = time.Now()
	r.records = append(r.records, *record)
}

func (r *fakeAssignmentRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.AssignmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.AssignmentRecord
	for _, record := range r.records {
		if record.TicketID == ticketID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeAssignmentRepo) all() []domain.AssignmentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AssignmentRecord{}, r.records...)
}

type fakeTransitionRepo struct {
	mu      sync.Mutex
	records []domain.TransitionRecord
}

func (r *fakeTransitionRepo) append(record *domain.TransitionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = int64(len(r.records) + 1)
	record.CreatedAt = time.Now()
	r.records = append(r.records, *record)
}

func (r *fakeTransitionRepo) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TransitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TransitionRecord
	for _, record := range r.records {
		if record.TicketID == ticketID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakeTransitionRepo) all() []domain.TransitionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TransitionRecord{}, r.records...)
}
