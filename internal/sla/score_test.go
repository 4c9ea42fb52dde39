package sla

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestComputeScore_OverdueAltaExample(t *testing.T) {
	// Alta ticket 2h past its resolution deadline
	score := ComputeScore(domain.PriorityAlta, -2)
	assert.Equal(t, 3002.0, score)
}

func TestComputeScore_PriorityDominates(t *testing.T) {
	// within a +-500h remaining window no amount of SLA slack lets a lower
	// priority outrank a higher one; at exactly +-500h adjacent weights tie
	pairs := []struct {
		higher domain.TicketPriority
		lower  domain.TicketPriority
	}{
		{domain.PriorityAlta, domain.PriorityMedia},
		{domain.PriorityAlta, domain.PriorityBaja},
		{domain.PriorityMedia, domain.PriorityBaja},
	}
	for _, pair := range pairs {
		assert.Greater(t, ComputeScore(pair.higher, 499), ComputeScore(pair.lower, -499))
		assert.GreaterOrEqual(t, ComputeScore(pair.higher, 500), ComputeScore(pair.lower, -500))
		for hours := -500.0; hours <= 500.0; hours += 50 {
			assert.Greater(t, ComputeScore(pair.higher, hours), ComputeScore(pair.lower, hours))
		}
	}
}

func TestComputeScore_MoreOverdueScoresHigher(t *testing.T) {
	assert.Greater(t,
		ComputeScore(domain.PriorityMedia, -10),
		ComputeScore(domain.PriorityMedia, -1))
}

func TestSnapshot(t *testing.T) {
	snapshot := Snapshot(domain.PriorityBaja, 12.5)
	assert.Equal(t, 1, snapshot.PriorityWeight)
	assert.Equal(t, 12.5, snapshot.RemainingHours)
	assert.Equal(t, 987.5, snapshot.Score)
}
