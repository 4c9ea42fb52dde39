package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func tech(id int64, available bool, load int, specialties ...int64) domain.Technician {
	return domain.Technician{
		ID:           id,
		Available:    available,
		OpenTickets:  load,
		SpecialtyIDs: specialties,
	}
}

func TestSelectTechnician_PicksLeastLoadedSpecialist(t *testing.T) {
	networking := int64(7)
	roster := []domain.Technician{
		tech(1, true, 3, networking),
		tech(2, true, 1, networking),
	}

	selection, err := SelectTechnician(&networking, roster)
	require.NoError(t, err)
	assert.Equal(t, int64(2), selection.Technician.ID)
	assert.True(t, selection.SpecialtyMatched)
}

func TestSelectTechnician_FallbackFlagsMismatch(t *testing.T) {
	security := int64(9)
	roster := []domain.Technician{
		tech(5, true, 0, 3),
	}

	selection, err := SelectTechnician(&security, roster)
	require.NoError(t, err)
	assert.Equal(t, int64(5), selection.Technician.ID)
	assert.False(t, selection.SpecialtyMatched)
}

func TestSelectTechnician_NeverPicksUnavailable(t *testing.T) {
	networking := int64(7)
	roster := []domain.Technician{
		tech(1, false, 0, networking),
		tech(2, true, 9, networking),
	}

	selection, err := SelectTechnician(&networking, roster)
	require.NoError(t, err)
	assert.Equal(t, int64(2), selection.Technician.ID)
}

func TestSelectTechnician_NoSpecialtyConsidersAllAvailable(t *testing.T) {
	roster := []domain.Technician{
		tech(1, true, 2, 4),
		tech(2, true, 2, 5),
		tech(3, false, 0, 4),
	}

	selection, err := SelectTechnician(nil, roster)
	require.NoError(t, err)
	// load tie resolves by id ascending
	assert.Equal(t, int64(1), selection.Technician.ID)
	assert.True(t, selection.SpecialtyMatched)
}

func TestSelectTechnician_NobodyAvailable(t *testing.T) {
	roster := []domain.Technician{
		tech(1, false, 0, 4),
		tech(2, false, 0, 5),
	}

	_, err := SelectTechnician(nil, roster)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNoTechnicianAvailable))
}

func TestSelectTechnician_EmptyRoster(t *testing.T) {
	_, err := SelectTechnician(nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNoTechnicianAvailable))
}
