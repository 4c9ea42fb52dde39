package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SLAPolicyRepository reads immutable SLA reference data.
type SLAPolicyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SLAPolicy, error)
	List(ctx context.Context) ([]domain.SLAPolicy, error)
}

type slaPolicyRepository struct {
	pool *pgxpool.Pool
}

// NewSLAPolicyRepository instantiates repository.
func NewSLAPolicyRepository(pool *pgxpool.Pool) SLAPolicyRepository {
	return &slaPolicyRepository{pool: pool}
}

const slaPolicyColumns = `id, name, response_min_minutes, response_max_minutes,
       resolution_min_minutes, resolution_max_minutes`

func (r *slaPolicyRepository) GetByID(ctx context.Context, id int64) (*domain.SLAPolicy, error) {
	const query = `SELECT ` + slaPolicyColumns + ` FROM sla_policies WHERE id=$1`
	var policy domain.SLAPolicy
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&policy.ID,
		&policy.Name,
		&policy.ResponseMinMinutes,
		&policy.ResponseMaxMinutes,
		&policy.ResolutionMinMinutes,
		&policy.ResolutionMaxMinutes,
	); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *slaPolicyRepository) List(ctx context.Context) ([]domain.SLAPolicy, error) {
	const query = `SELECT ` + slaPolicyColumns + ` FROM sla_policies ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SLAPolicy
	for rows.Next() {
		var policy domain.SLAPolicy
		if err := rows.Scan(
			&policy.ID,
			&policy.Name,
			&policy.ResponseMinMinutes,
			&policy.ResponseMaxMinutes,
			&policy.ResolutionMinMinutes,
			&policy.ResolutionMaxMinutes,
		); err != nil {
			return nil, err
		}
		result = append(result, policy)
	}
	return result, rows.Err()
}
