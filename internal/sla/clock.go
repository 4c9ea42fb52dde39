// Package sla holds the pure functions of the assignment engine: the SLA
// clock that turns a ticket's age and policy into remaining time plus an
// urgency tier, and the scoring function that ranks pending tickets.
package sla

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UrgencyTier buckets remaining SLA time into fixed bands.
type UrgencyTier string

const (
	TierOverdue  UrgencyTier = "OVERDUE"
	TierCritical UrgencyTier = "CRITICAL"
	TierUrgent   UrgencyTier = "URGENT"
	TierUpcoming UrgencyTier = "UPCOMING"
	TierNormal   UrgencyTier = "NORMAL"
)

// Rank orders tiers from most to least urgent, Overdue first. Used by tests
// and by callers that need a comparable urgency ordering.
func (t UrgencyTier) Rank() int {
	switch t {
	case TierOverdue:
		return 0
	case TierCritical:
		return 1
	case TierUrgent:
		return 2
	case TierUpcoming:
		return 3
	default:
		return 4
	}
}

// RemainingHours returns the signed hours left until the resolution deadline
// defined by the policy. Negative means overdue.
func RemainingHours(createdAt time.Time, policy domain.SLAPolicy, now time.Time) float64 {
	deadline := createdAt.Add(time.Duration(policy.ResolutionMaxMinutes) * time.Minute)
	return deadline.Sub(now).Hours()
}

// TierFor maps remaining hours to an urgency tier. Band bounds are closed on
// the lower side: exactly 2.0h is Critical, exactly 4.0h is Urgent.
func TierFor(remainingHours float64) UrgencyTier {
	switch {
	case remainingHours < 0:
		return TierOverdue
	case remainingHours <= 2:
		return TierCritical
	case remainingHours <= 4:
		return TierUrgent
	case remainingHours <= 24:
		return TierUpcoming
	default:
		return TierNormal
	}
}

// ComputeUrgency is the SLA clock: deterministic given its three inputs and
// free of side effects.
func ComputeUrgency(createdAt time.Time, policy domain.SLAPolicy, now time.Time) (float64, UrgencyTier) {
	remaining := RemainingHours(createdAt, policy, now)
	return remaining, TierFor(remaining)
}
