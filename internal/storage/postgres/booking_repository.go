package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetCourtForUpdate locks the court row for the rest of the
// transaction, serializing concurrent booking writes per court.
func (r *BookingRepository) GetCourtForUpdate(ctx context.Context, courtID string) (domain.Court, error) {
	const query = `SELECT id, name, created_at FROM courts WHERE id = $1 FOR UPDATE`

	var c domain.Court
	err := r.queryRow(ctx, query, courtID).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Court{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Court{}, domain.ErrCourtNotFound
		}
		return domain.Court{}, fmt.Errorf("get court: %w", err)
	}
	return c, nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return r.getBooking(ctx, id, false)
}

func (r *BookingRepository) GetBookingForUpdate(ctx context.Context, id string) (domain.Booking, error) {
	return r.getBooking(ctx, id, true)
}

func (r *BookingRepository) getBooking(ctx context.Context, id string, forUpdate bool) (domain.Booking, error) {
	query := `
SELECT id, court_id, owner_id, start_time, end_time, status, created_at, updated_at
FROM bookings
WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	b, err := scanBooking(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Booking{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListConfirmedStartingBefore returns confirmed bookings on the court
// with start_time < before. This is the one-sided prune of the overlap
// check; the caller re-checks end_time against the candidate start.
func (r *BookingRepository) ListConfirmedStartingBefore(ctx context.Context, courtID string, before time.Time) ([]domain.Booking, error) {
	const query = `
SELECT id, court_id, owner_id, start_time, end_time, status, created_at, updated_at
FROM bookings
WHERE court_id = $1 AND status = $2 AND start_time < $3
ORDER BY start_time`

	rows, err := r.query(ctx, query, courtID, domain.BookingStatusConfirmed, before)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list confirmed bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	const query = `
SELECT id, court_id, owner_id, start_time, end_time, status, created_at, updated_at
FROM bookings
WHERE owner_id = $1
ORDER BY start_time DESC`

	rows, err := r.query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by owner: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepository) InsertBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, court_id, owner_id, start_time, end_time, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.CourtID,
		booking.OwnerID,
		booking.Interval.Start,
		booking.Interval.End,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) UpdateBookingInterval(ctx context.Context, id string, iv domain.Interval, updatedAt time.Time) error {
	const stmt = `UPDATE bookings SET start_time = $2, end_time = $3, updated_at = $4 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, iv.Start, iv.End, updatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update booking interval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	const stmt = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id, status, updatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update booking status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func scanBooking(row pgx.Row) (domain.Booking, error) {
	var b domain.Booking
	var status string
	err := row.Scan(
		&b.ID,
		&b.CourtID,
		&b.OwnerID,
		&b.Interval.Start,
		&b.Interval.End,
		&status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return bookings, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
