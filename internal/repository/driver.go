package repository

import (
	"context"

	"carpool/internal/domain"
)

// DriverRepository defines the persistence operations for driver profiles.
type DriverRepository interface {
	// Create persists a new driver profile.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// UpdateRating updates a driver's aggregated rating and count.
	UpdateRating(ctx context.Context, driverID string, rating float64, count int) error
}

// RatingRepository defines the persistence operations for submitted ratings.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// GetByDriver retrieves all ratings submitted for a driver.
	GetByDriver(ctx context.Context, driverID string) ([]*domain.Rating, error)
}
