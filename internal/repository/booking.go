package repository

import (
	"context"

	"carpool/internal/domain"
)

// BookingRepository defines the persistence operations for seat bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// GetByRide retrieves all bookings for a ride.
	GetByRide(ctx context.Context, rideID string) ([]*domain.Booking, error)

	// GetByRider retrieves all bookings made by a rider.
	GetByRider(ctx context.Context, riderID string) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error
}
