package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/sla"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	CategoryID  int64                 `json:"category_id"`
	SpecialtyID *int64                `json:"specialty_id"`
	Tag         string                `json:"tag"`
	Priority    domain.TicketPriority `json:"priority"`
}

// TransitionRequest payload.
type TransitionRequest struct {
	TargetState  domain.TicketState `json:"target_state"`
	Observations string             `json:"observations"`
	EvidenceIDs  []string           `json:"evidence_ids"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"`
	CategoryID   int64                 `json:"category_id"`
	SpecialtyID  *int64                `json:"specialty_id"`
	Tag          string                `json:"tag"`
	Priority     domain.TicketPriority `json:"priority"`
	State        domain.TicketState    `json:"state"`
	TechnicianID *int64                `json:"technician_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ClosedAt     *time.Time            `json:"closed_at"`
}

// TicketDetailResponse provides full ticket info with audit history.
type TicketDetailResponse struct {
	TicketSummary
	Description    string               `json:"description"`
	SLAPolicyID    int64                `json:"sla_policy_id"`
	RemainingHours float64              `json:"remaining_hours"`
	UrgencyTier    sla.UrgencyTier      `json:"urgency_tier"`
	Assignments    []AssignmentResponse `json:"assignments"`
	Transitions    []TransitionResponse `json:"transitions"`
}

// TransitionResponse represents an audit trail entry.
type TransitionResponse struct {
	ID           int64              `json:"id"`
	FromState    domain.TicketState `json:"from_state"`
	ToState      domain.TicketState `json:"to_state"`
	Observations string             `json:"observations"`
	EvidenceIDs  []string           `json:"evidence_ids"`
	ActorUserID  *int64             `json:"actor_user_id"`
	CreatedAt    time.Time          `json:"created_at"`
}
