package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create persists a new driver profile.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, rating, rating_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		nullString(driver.Phone),
		driver.Rating,
		driver.RatingCount,
		driver.CreatedAt,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT id, name, phone, rating, rating_count, created_at FROM drivers WHERE id = $1`

	var driver domain.Driver
	var phone sql.NullString

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.Name,
		&phone,
		&driver.Rating,
		&driver.RatingCount,
		&driver.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	driver.Phone = phone.String
	return &driver, nil
}

// UpdateRating updates a driver's aggregated rating and count.
func (r *DriverRepository) UpdateRating(ctx context.Context, driverID string, rating float64, count int) error {
	query := `UPDATE drivers SET rating = $2, rating_count = $3 WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, driverID, rating, count)
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

// RatingRepository is a PostgreSQL implementation of repository.RatingRepository.
type RatingRepository struct {
	q Querier
}

// NewRatingRepository creates a new PostgreSQL rating repository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{q: db}
}

// NewRatingRepositoryWithTx creates a rating repository using a transaction.
func NewRatingRepositoryWithTx(tx *sql.Tx) *RatingRepository {
	return &RatingRepository{q: tx}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, driver_id, rider_id, ride_id, stars, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		rating.ID,
		rating.DriverID,
		rating.RiderID,
		rating.RideID,
		rating.Stars,
		nullString(rating.Comment),
		rating.CreatedAt,
	)
	return err
}

// GetByDriver retrieves all ratings submitted for a driver.
func (r *RatingRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Rating, error) {
	query := `
		SELECT id, driver_id, rider_id, ride_id, stars, comment, created_at
		FROM ratings WHERE driver_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []*domain.Rating
	for rows.Next() {
		var rating domain.Rating
		var comment sql.NullString
		if err := rows.Scan(
			&rating.ID,
			&rating.DriverID,
			&rating.RiderID,
			&rating.RideID,
			&rating.Stars,
			&comment,
			&rating.CreatedAt,
		); err != nil {
			return nil, err
		}
		rating.Comment = comment.String
		ratings = append(ratings, &rating)
	}
	return ratings, rows.Err()
}
