package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AssignmentRepository reads the assignment audit trail. Rows are inserted by
// ApplyTransition in the same transaction as the Asignado move and are never
// updated or deleted.
type AssignmentRepository interface {
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.AssignmentRecord, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

func insertAssignment(ctx context.Context, db dbtx, record *domain.AssignmentRecord) error {
	const query = `
        INSERT INTO assignments (ticket_id, technician_id, method, assigned_by_user_id, justification,
                                 priority_weight, remaining_hours, score, specialty_matched)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return db.QueryRow(ctx, query,
		record.TicketID,
		record.TechnicianID,
		record.Method,
		record.AssignedByUserID,
		record.Justification,
		record.Snapshot.PriorityWeight,
		record.Snapshot.RemainingHours,
		record.Snapshot.Score,
		record.SpecialtyMatched,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *assignmentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.AssignmentRecord, error) {
	const query = `
        SELECT id, ticket_id, technician_id, method, assigned_by_user_id, justification,
               priority_weight, remaining_hours, score, specialty_matched, created_at
        FROM assignments WHERE ticket_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AssignmentRecord
	for rows.Next() {
		var record domain.AssignmentRecord
		if err := rows.Scan(
			&record.ID,
			&record.TicketID,
			&record.TechnicianID,
			&record.Method,
			&record.AssignedByUserID,
			&record.Justification,
			&record.Snapshot.PriorityWeight,
			&record.Snapshot.RemainingHours,
			&record.Snapshot.Score,
			&record.SpecialtyMatched,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
