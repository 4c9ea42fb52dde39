package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/sla"
)

// ManualAssignRequest payload.
type ManualAssignRequest struct {
	TechnicianID  int64  `json:"technician_id"`
	Justification string `json:"justification"`
}

// ScoreSnapshotResponse freezes the scoring inputs/output of an assignment.
type ScoreSnapshotResponse struct {
	PriorityWeight int     `json:"priority_weight"`
	RemainingHours float64 `json:"remaining_hours"`
	Score          float64 `json:"score"`
}

// AssignmentResponse represents an assignment audit entry.
type AssignmentResponse struct {
	ID               int64                   `json:"id"`
	TicketID         int64                   `json:"ticket_id"`
	TechnicianID     int64                   `json:"technician_id"`
	Method           domain.AssignmentMethod `json:"method"`
	AssignedByUserID *int64                  `json:"assigned_by_user_id"`
	Justification    string                  `json:"justification,omitempty"`
	Snapshot         ScoreSnapshotResponse   `json:"score_snapshot"`
	SpecialtyMatched bool                    `json:"specialty_matched"`
	CreatedAt        time.Time               `json:"created_at"`
}

// BatchOutcomeResponse reports a single ticket within an autotriage run.
type BatchOutcomeResponse struct {
	TicketID         int64                  `json:"ticket_id"`
	Success          bool                   `json:"success"`
	TechnicianID     *int64                 `json:"technician_id,omitempty"`
	SpecialtyMatched bool                   `json:"specialty_matched"`
	Score            *ScoreSnapshotResponse `json:"score,omitempty"`
	UrgencyTier      sla.UrgencyTier        `json:"urgency_tier,omitempty"`
	Reason           string                 `json:"reason,omitempty"`
}

// BatchResultResponse aggregates an autotriage run.
type BatchResultResponse struct {
	Outcomes       []BatchOutcomeResponse `json:"outcomes"`
	TotalProcessed int                    `json:"total_processed"`
	TotalSucceeded int                    `json:"total_succeeded"`
}
