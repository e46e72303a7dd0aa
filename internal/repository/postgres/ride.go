package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

const rideColumns = `id, driver_id, driver_name, driver_phone, driver_rating, rating_count,
	pickup_lat, pickup_lng, pickup_label, dropoff_lat, dropoff_lng, dropoff_label,
	departure_date, departure_time, price_per_seat, total_seats, available_seats,
	status, created_at, cancelled_at`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.DriverName,
		nullString(ride.DriverPhone),
		ride.DriverRating,
		ride.RatingCount,
		ride.PickupLat,
		ride.PickupLng,
		ride.PickupLabel,
		ride.DropoffLat,
		ride.DropoffLng,
		ride.DropoffLabel,
		ride.DepartureDate,
		ride.DepartureTime,
		ride.PricePerSeat,
		ride.TotalSeats,
		ride.AvailableSeats,
		ride.Status,
		ride.CreatedAt,
		cancelledAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetAll retrieves all rides.
func (r *RideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY created_at DESC`
	return r.queryRides(ctx, query)
}

// GetActive retrieves ACTIVE rides with at least one available seat.
func (r *RideRepository) GetActive(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE status = $1 AND available_seats > 0
		ORDER BY created_at DESC`
	return r.queryRides(ctx, query, domain.RideStatusActive)
}

// GetActiveByIDs retrieves the ACTIVE, seat-available subset of the given IDs.
func (r *RideRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]*domain.Ride, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + rideColumns + ` FROM rides
		WHERE id = ANY($1) AND status = $2 AND available_seats > 0`
	return r.queryRides(ctx, query, pq.Array(ids), domain.RideStatusActive)
}

// Update updates an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET driver_rating = $2, rating_count = $3, available_seats = $4,
			status = $5, cancelled_at = $6
		WHERE id = $1
	`

	var cancelledAt sql.NullTime
	if !ride.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: ride.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverRating,
		ride.RatingCount,
		ride.AvailableSeats,
		ride.Status,
		cancelledAt,
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

// UpdateDriverRating refreshes the denormalized driver rating on every ride
// posted by the driver.
func (r *RideRepository) UpdateDriverRating(ctx context.Context, driverID string, rating float64, count int) error {
	query := `UPDATE rides SET driver_rating = $2, rating_count = $3 WHERE driver_id = $1`
	_, err := r.q.ExecContext(ctx, query, driverID, rating, count)
	return err
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverPhone sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.DriverName,
		&driverPhone,
		&ride.DriverRating,
		&ride.RatingCount,
		&ride.PickupLat,
		&ride.PickupLng,
		&ride.PickupLabel,
		&ride.DropoffLat,
		&ride.DropoffLng,
		&ride.DropoffLabel,
		&ride.DepartureDate,
		&ride.DepartureTime,
		&ride.PricePerSeat,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.Status,
		&ride.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	ride.DriverPhone = driverPhone.String
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}
	return &ride, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
