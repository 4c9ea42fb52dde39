package sla

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestComputeUrgency_Tiers(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	policy := domain.SLAPolicy{ResolutionMaxMinutes: 480}

	cases := []struct {
		name          string
		createdAgo    time.Duration
		wantRemaining float64
		wantTier      UrgencyTier
	}{
		{"overdue", 10 * time.Hour, -2, TierOverdue},
		{"critical", 7 * time.Hour, 1, TierCritical},
		{"critical boundary at exactly 2h", 6 * time.Hour, 2, TierCritical},
		{"urgent", 5 * time.Hour, 3, TierUrgent},
		{"urgent boundary at exactly 4h", 4 * time.Hour, 4, TierUrgent},
		{"upcoming", 2 * time.Hour, 6, TierUpcoming},
		{"upcoming boundary at exactly 24h", -16 * time.Hour, 24, TierUpcoming},
		{"normal", -20 * time.Hour, 28, TierNormal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			createdAt := now.Add(-tc.createdAgo)
			remaining, tier := ComputeUrgency(createdAt, policy, now)
			if remaining != tc.wantRemaining {
				t.Fatalf("remaining = %v, want %v", remaining, tc.wantRemaining)
			}
			if tier != tc.wantTier {
				t.Fatalf("tier = %s, want %s", tier, tc.wantTier)
			}
		})
	}
}

func TestComputeUrgency_ZeroRemainingIsCritical(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	policy := domain.SLAPolicy{ResolutionMaxMinutes: 60}
	createdAt := now.Add(-time.Hour)

	remaining, tier := ComputeUrgency(createdAt, policy, now)
	if remaining != 0 {
		t.Fatalf("remaining = %v, want 0", remaining)
	}
	if tier != TierCritical {
		t.Fatalf("tier = %s, want %s", tier, TierCritical)
	}
}

func TestComputeUrgency_MonotonicInNow(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	policy := domain.SLAPolicy{ResolutionMaxMinutes: 2880}

	prevRemaining, prevTier := ComputeUrgency(createdAt, policy, createdAt)
	for step := 1; step <= 96; step++ {
		now := createdAt.Add(time.Duration(step) * time.Hour)
		remaining, tier := ComputeUrgency(createdAt, policy, now)
		if remaining >= prevRemaining {
			t.Fatalf("remaining did not decrease: %v -> %v at step %d", prevRemaining, remaining, step)
		}
		if tier.Rank() > prevTier.Rank() {
			t.Fatalf("tier rank increased: %s -> %s at step %d", prevTier, tier, step)
		}
		prevRemaining, prevTier = remaining, tier
	}
}

func TestComputeUrgency_Deterministic(t *testing.T) {
	createdAt := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	now := createdAt.Add(3 * time.Hour)
	policy := domain.SLAPolicy{ResolutionMaxMinutes: 240}

	r1, t1 := ComputeUrgency(createdAt, policy, now)
	r2, t2 := ComputeUrgency(createdAt, policy, now)
	if r1 != r2 || t1 != t2 {
		t.Fatalf("non-deterministic result: (%v,%s) vs (%v,%s)", r1, t1, r2, t2)
	}
}
