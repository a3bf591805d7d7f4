package postgres

import (
	"context"
	"fmt"

	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourtRepository struct {
	pool *pgxpool.Pool
}

func NewCourtRepository(pool *pgxpool.Pool) *CourtRepository {
	return &CourtRepository{pool: pool}
}

func (r *CourtRepository) CreateCourt(ctx context.Context, court domain.Court) error {
	const stmt = `INSERT INTO courts (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, stmt, court.ID, court.Name, court.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCourtAlreadyExists
		}
		return fmt.Errorf("create court: %w", err)
	}
	return nil
}

func (r *CourtRepository) ListCourts(ctx context.Context) ([]domain.Court, error) {
	const query = `SELECT id, name, created_at FROM courts ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer rows.Close()

	var courts []domain.Court
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courts: %w", err)
	}
	return courts, nil
}

func (r *CourtRepository) CourtExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM courts WHERE id = $1`

	var one int
	err := r.pool.QueryRow(ctx, query, id).Scan(&one)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("court exists: %w", err)
	}
	return true, nil
}
