package redis

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// LocationStoreInterface defines ride pickup geo-index operations.
// Defined here so services can depend on an interface and tests can mock it.
type LocationStoreInterface interface {
	IndexRide(ctx context.Context, rideID string, lat, lng float64) error
	FindNearbyRides(ctx context.Context, lat, lng, radiusKm float64) ([]RidePickup, error)
	RemoveRide(ctx context.Context, rideID string) error
}

// LockStoreInterface defines per-ride lock operations.
type LockStoreInterface interface {
	AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error)
	ReleaseRideLock(ctx context.Context, rideID string) error
}

// CacheStoreInterface defines entity-cache operations.
type CacheStoreInterface interface {
	GetRating(ctx context.Context, driverID string) (*CachedRating, error)
	SetRating(ctx context.Context, rating *CachedRating) error
	InvalidateRating(ctx context.Context, driverID string) error
	GetRide(ctx context.Context, rideID string) (*domain.Ride, error)
	SetRide(ctx context.Context, ride *domain.Ride) error
	InvalidateRide(ctx context.Context, rideID string) error
}

// Compile-time interface checks.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ CacheStoreInterface    = (*CacheStore)(nil)
)
