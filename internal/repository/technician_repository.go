package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TechnicianRepository encapsulates roster persistence. Open-ticket loads are
// always recomputed from the ticket table at read time; there is no stored
// counter to drift.
type TechnicianRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Technician, error)
	ListWithLoad(ctx context.Context) ([]domain.Technician, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository instantiates repository.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

const technicianQuery = `
        SELECT t.id, t.name, t.email, t.available,
               COALESCE(ARRAY_AGG(ts.specialty_id) FILTER (WHERE ts.specialty_id IS NOT NULL), '{}') AS specialty_ids,
               (SELECT COUNT(*) FROM tickets tk
                 WHERE tk.technician_id = t.id AND tk.state IN ('ASIGNADO','EN_PROCESO')) AS open_tickets,
               t.created_at, t.updated_at
        FROM technicians t
        LEFT JOIN technician_specialties ts ON ts.technician_id = t.id`

func (r *technicianRepository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	query := technicianQuery + ` WHERE t.id=$1 GROUP BY t.id`
	var tech domain.Technician
	if err := scanTechnician(r.pool.QueryRow(ctx, query, id), &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *technicianRepository) ListWithLoad(ctx context.Context) ([]domain.Technician, error) {
	query := technicianQuery + ` GROUP BY t.id ORDER BY t.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Technician
	for rows.Next() {
		var tech domain.Technician
		if err := scanTechnician(rows, &tech); err != nil {
			return nil, err
		}
		result = append(result, tech)
	}
	return result, rows.Err()
}

func (r *technicianRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	const query = `UPDATE technicians SET available=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, available, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTechnician(row rowScanner, tech *domain.Technician) error {
	return row.Scan(
		&tech.ID,
		&tech.Name,
		&tech.Email,
		&tech.Available,
		&tech.SpecialtyIDs,
		&tech.OpenTickets,
		&tech.CreatedAt,
		&tech.UpdatedAt,
	)
}
