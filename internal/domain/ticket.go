package domain

import "time"

// TicketState enumerates lifecycle states for tickets. The lifecycle is
// strictly linear: Pendiente -> Asignado -> En Proceso -> Resuelto -> Cerrado.
type TicketState string

const (
	StatePendiente TicketState = "PENDIENTE"
	StateAsignado  TicketState = "ASIGNADO"
	StateEnProceso TicketState = "EN_PROCESO"
	StateResuelto  TicketState = "RESUELTO"
	StateCerrado   TicketState = "CERRADO"
)

// Next returns the single legal successor state. ok is false for Cerrado
// (terminal) and for unknown states.
func (s TicketState) Next() (TicketState, bool) {
	switch s {
	case StatePendiente:
		return StateAsignado, true
	case StateAsignado:
		return StateEnProceso, true
	case StateEnProceso:
		return StateResuelto, true
	case StateResuelto:
		return StateCerrado, true
	default:
		return "", false
	}
}

// IsOpen reports whether a ticket in this state counts against a
// technician's open load.
func (s TicketState) IsOpen() bool {
	return s == StateAsignado || s == StateEnProceso
}

// TicketPriority enumerates business priority.
type TicketPriority string

const (
	PriorityAlta  TicketPriority = "ALTA"
	PriorityMedia TicketPriority = "MEDIA"
	PriorityBaja  TicketPriority = "BAJA"
)

// Weight maps priority to its fixed ordinal used by scoring. Unknown
// priorities weigh the same as Baja.
func (p TicketPriority) Weight() int {
	switch p {
	case PriorityAlta:
		return 3
	case PriorityMedia:
		return 2
	default:
		return 1
	}
}

// Ticket is the root aggregate for helpdesk requests. State, technician
// binding and closing timestamp are mutated only through the lifecycle
// service; assignment/transition records are appended, never edited.
type Ticket struct {
	ID           int64
	Title        string
	Description  string
	CategoryID   int64
	SpecialtyID  *int64
	Tag          string
	Priority     TicketPriority
	State        TicketState
	TechnicianID *int64
	SLAPolicyID  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
}
