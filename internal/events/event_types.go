package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketAssigned     EventType = "ticket_assigned"
	EventTicketStateChanged EventType = "ticket_state_changed"
)

// Event represents a domain event emitted by services. Payloads carry the
// corresponding audit record so notification collaborators see exactly what
// was committed.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	TicketID    int64     `json:"ticket_id"`
	ActorUserID *int64    `json:"actor_user_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Payload     any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CategoryID  int64                 `json:"category_id"`
	SpecialtyID *int64                `json:"specialty_id,omitempty"`
	Priority    domain.TicketPriority `json:"priority"`
	Title       string                `json:"title"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Record domain.AssignmentRecord `json:"record"`
}

// TicketStateChangedPayload payload.
type TicketStateChangedPayload struct {
	Record domain.TransitionRecord `json:"record"`
}
