package sla

import "github.com/spec-kit/helpdesk-service/internal/domain"

// priorityBand keeps priority strictly dominant over SLA slack: realistic
// remaining-hours magnitudes stay far below 1000, so no amount of slack lets
// a Media ticket outrank an Alta one.
const priorityBand = 1000

// ComputeScore combines business priority and remaining SLA hours into one
// comparable urgency score. Higher is more urgent; overdue tickets (negative
// remaining hours) gain proportionally to how overdue they are.
func ComputeScore(priority domain.TicketPriority, remainingHours float64) float64 {
	return float64(priority.Weight())*priorityBand - remainingHours
}

// Snapshot computes and freezes the full scoring input/output for the audit
// trail.
func Snapshot(priority domain.TicketPriority, remainingHours float64) domain.ScoreSnapshot {
	return domain.ScoreSnapshot{
		PriorityWeight: priority.Weight(),
		RemainingHours: remainingHours,
		Score:          ComputeScore(priority, remainingHours),
	}
}
