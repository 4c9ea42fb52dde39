package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func newLifecycleFixture(t *testing.T, evidence map[string]bool) (*LifecycleService, *fakeTicketRepo, *fakeTransitionRepo) {
	t.Helper()
	transitions := &fakeTransitionRepo{}
	tickets := newFakeTicketRepo(transitions, nil)
	svc := NewLifecycleService(LifecycleDependencies{
		TicketRepo:     tickets,
		EvidencePolicy: evidence,
	})
	return svc, tickets, transitions
}

func seedTicket(repo *fakeTicketRepo, id int64, state domain.TicketState) {
	repo.put(domain.Ticket{
		ID:          id,
		Title:       "printer offline",
		CategoryID:  1,
		Priority:    domain.PriorityMedia,
		State:       state,
		SLAPolicyID: 1,
		CreatedAt:   time.Now().Add(-time.Hour),
	})
}

func TestTransitionStateRequiresObservations(t *testing.T) {
	svc, tickets, _ := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StateAsignado)

	for _, observations := range []string{"", "   ", "\n\t"} {
		_, err := svc.TransitionState(context.Background(), 1, domain.StateEnProceso, observations, nil, nil)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeObservationsRequired), "observations %q", observations)
	}
}

func TestTransitionStateAdvancesAndRecords(t *testing.T) {
	svc, tickets, transitions := newLifecycleFixture(t, nil)
	seedTicket(tickets, 7, domain.StateAsignado)
	actor := int64(42)

	ticket, err := svc.TransitionState(context.Background(), 7, domain.StateEnProceso, "diagnosing on site", nil, &actor)
	require.NoError(t, err)
	assert.Equal(t, domain.StateEnProceso, ticket.State)

	stored, err := tickets.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.StateEnProceso, stored.State)

	records := transitions.all()
	require.Len(t, records, 1)
	assert.Equal(t, domain.StateAsignado, records[0].FromState)
	assert.Equal(t, domain.StateEnProceso, records[0].ToState)
	assert.Equal(t, "diagnosing on site", records[0].Observations)
	require.NotNil(t, records[0].ActorUserID)
	assert.Equal(t, actor, *records[0].ActorUserID)
}

func TestTransitionStateRejectsNonLinearMoves(t *testing.T) {
	cases := []struct {
		name    string
		current domain.TicketState
		target  domain.TicketState
	}{
		{"backward from resolved", domain.StateResuelto, domain.StateEnProceso},
		{"skip in-process", domain.StateAsignado, domain.StateResuelto},
		{"closed is terminal", domain.StateCerrado, domain.StateCerrado},
		{"repeat current state", domain.StateEnProceso, domain.StateEnProceso},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, tickets, transitions := newLifecycleFixture(t, nil)
			seedTicket(tickets, 1, tc.current)

			_, err := svc.TransitionState(context.Background(), 1, tc.target, "valid observations here", nil, nil)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeIllegalTransition))
			assert.Empty(t, transitions.all())

			stored, getErr := tickets.GetByID(context.Background(), 1)
			require.NoError(t, getErr)
			assert.Equal(t, tc.current, stored.State, "failed transition must not mutate state")
		})
	}
}

func TestTransitionStateRejectsDirectAssignment(t *testing.T) {
	svc, tickets, _ := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StatePendiente)

	_, err := svc.TransitionState(context.Background(), 1, domain.StateAsignado, "trying to sneak past", nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestTransitionStateAsignadoFromWrongStateIsIllegal(t *testing.T) {
	// only a Pendiente ticket can move to Asignado at all; elsewhere the
	// request fails on the state machine, not on the technician guard
	for _, current := range []domain.TicketState{domain.StateEnProceso, domain.StateResuelto, domain.StateCerrado} {
		svc, tickets, _ := newLifecycleFixture(t, nil)
		seedTicket(tickets, 1, current)

		_, err := svc.TransitionState(context.Background(), 1, domain.StateAsignado, "trying to rewind the ticket", nil, nil)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeIllegalTransition), "from %s", current)
	}
}

func TestTransitionStateAuditFailureKeepsState(t *testing.T) {
	svc, tickets, transitions := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StateAsignado)
	tickets.auditErr = errors.New("insert transitions: connection reset")

	_, err := svc.TransitionState(context.Background(), 1, domain.StateEnProceso, "work started on site", nil, nil)
	require.Error(t, err)

	stored, getErr := tickets.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StateAsignado, stored.State, "state must roll back with the failed audit write")
	assert.Empty(t, transitions.all())
}

func TestTransitionStateUnknownTicket(t *testing.T) {
	svc, _, _ := newLifecycleFixture(t, nil)

	_, err := svc.TransitionState(context.Background(), 999, domain.StateEnProceso, "anything at all", nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestTransitionStateEvidencePolicy(t *testing.T) {
	policy := map[string]bool{
		TransitionKey(domain.StateEnProceso, domain.StateResuelto): true,
	}
	svc, tickets, transitions := newLifecycleFixture(t, policy)
	seedTicket(tickets, 1, domain.StateEnProceso)

	_, err := svc.TransitionState(context.Background(), 1, domain.StateResuelto, "replaced the fuser unit", nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeEvidenceRequired))

	evidence := []string{"img-001", "img-002"}
	ticket, err := svc.TransitionState(context.Background(), 1, domain.StateResuelto, "replaced the fuser unit", evidence, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StateResuelto, ticket.State)

	records := transitions.all()
	require.Len(t, records, 1)
	assert.Equal(t, evidence, records[0].EvidenceIDs)
}

func TestTransitionStateClosedAtStamp(t *testing.T) {
	svc, tickets, _ := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StateResuelto)

	frozen := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	ticket, err := svc.TransitionState(context.Background(), 1, domain.StateCerrado, "customer confirmed fix", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, ticket.ClosedAt)
	assert.Equal(t, frozen, *ticket.ClosedAt)

	stored, err := tickets.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, stored.ClosedAt)
	assert.Equal(t, frozen, *stored.ClosedAt)
}

func TestCommitAssignmentBindsTechnician(t *testing.T) {
	svc, tickets, transitions := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StatePendiente)

	ticket, err := svc.CommitAssignment(context.Background(), 1, 5, "automatic assignment", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAsignado, ticket.State)
	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, int64(5), *ticket.TechnicianID)

	records := transitions.all()
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatePendiente, records[0].FromState)
	assert.Equal(t, domain.StateAsignado, records[0].ToState)
}

func TestCommitAssignmentLostRace(t *testing.T) {
	svc, tickets, _ := newLifecycleFixture(t, nil)
	seedTicket(tickets, 1, domain.StatePendiente)

	_, err := svc.CommitAssignment(context.Background(), 1, 5, "first assignment wins", nil, nil)
	require.NoError(t, err)

	_, err = svc.CommitAssignment(context.Background(), 1, 6, "second assignment loses", nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeIllegalTransition))

	stored, getErr := tickets.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, int64(5), *stored.TechnicianID, "winner's binding must survive")
}
