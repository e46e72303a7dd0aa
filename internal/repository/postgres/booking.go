package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

const bookingColumns = `id, ride_id, rider_id, rider_name, seats, status, created_at, confirmed_at, cancelled_at`

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.RideID,
		booking.RiderID,
		booking.RiderName,
		booking.Seats,
		booking.Status,
		booking.CreatedAt,
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CancelledAt),
	)

	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// GetByRide retrieves all bookings for a ride.
func (r *BookingRepository) GetByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ride_id = $1 ORDER BY created_at`
	return r.queryBookings(ctx, query, rideID)
}

// GetByRider retrieves all bookings made by a rider.
func (r *BookingRepository) GetByRider(ctx context.Context, riderID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE rider_id = $1 ORDER BY created_at DESC`
	return r.queryBookings(ctx, query, riderID)
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, confirmed_at = $3, cancelled_at = $4
		WHERE id = $1
	`

	result, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.Status,
		nullTime(booking.ConfirmedAt),
		nullTime(booking.CancelledAt),
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var confirmedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.RideID,
		&booking.RiderID,
		&booking.RiderName,
		&booking.Seats,
		&booking.Status,
		&booking.CreatedAt,
		&confirmedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if confirmedAt.Valid {
		booking.ConfirmedAt = confirmedAt.Time
	}
	if cancelledAt.Valid {
		booking.CancelledAt = cancelledAt.Time
	}
	return &booking, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
