package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TransitionRepository reads the lifecycle audit trail. Rows are inserted by
// ApplyTransition in the same transaction as the state move and are never
// updated or deleted.
type TransitionRepository interface {
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.TransitionRecord, error)
}

type transitionRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRepository instantiates repository.
func NewTransitionRepository(pool *pgxpool.Pool) TransitionRepository {
	return &transitionRepository{pool: pool}
}

func insertTransition(ctx context.Context, db dbtx, record *domain.TransitionRecord) error {
	const query = `
        INSERT INTO transitions (ticket_id, from_state, to_state, observations, evidence_ids, actor_user_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return db.QueryRow(ctx, query,
		record.TicketID,
		record.FromState,
		record.ToState,
		record.Observations,
		record.EvidenceIDs,
		record.ActorUserID,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *transitionRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.TransitionRecord, error) {
	const query = `
        SELECT id, ticket_id, from_state, to_state, observations, evidence_ids, actor_user_id, created_at
        FROM transitions WHERE ticket_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TransitionRecord
	for rows.Next() {
		var record domain.TransitionRecord
		if err := rows.Scan(
			&record.ID,
			&record.TicketID,
			&record.FromState,
			&record.ToState,
			&record.Observations,
			&record.EvidenceIDs,
			&record.ActorUserID,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
