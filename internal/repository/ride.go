package repository

import (
	"context"

	"carpool/internal/domain"
)

// RideRepository defines the persistence operations for posted rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetAll retrieves all rides.
	GetAll(ctx context.Context) ([]*domain.Ride, error)

	// GetActive retrieves rides that are ACTIVE with at least one available
	// seat, the candidate pool for recommendations.
	GetActive(ctx context.Context) ([]*domain.Ride, error)

	// GetActiveByIDs retrieves the subset of the given IDs that are ACTIVE
	// with at least one available seat.
	GetActiveByIDs(ctx context.Context, ids []string) ([]*domain.Ride, error)

	// Update updates an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error

	// UpdateDriverRating refreshes the denormalized driver rating on every
	// ride posted by the driver.
	UpdateDriverRating(ctx context.Context, driverID string, rating float64, count int) error
}
