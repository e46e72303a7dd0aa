package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"carpool/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	RatingCacheTTL = 5 * time.Minute  // Aggregates change only on new ratings
	RideCacheTTL   = 10 * time.Second // Seat counts change during booking
)

// Key prefixes
const (
	ratingCachePrefix = "cache:rating:"
	rideCachePrefix   = "cache:ride:"
)

// CachedRating represents a cached driver rating aggregate.
type CachedRating struct {
	DriverID string  `json:"driver_id"`
	Rating   float64 `json:"rating"`
	Count    int     `json:"count"`
}

// GetRating retrieves a driver's rating aggregate from cache.
func (s *CacheStore) GetRating(ctx context.Context, driverID string) (*CachedRating, error) {
	key := ratingCachePrefix + driverID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rating CachedRating
	if err := json.Unmarshal(data, &rating); err != nil {
		return nil, err
	}
	return &rating, nil
}

// SetRating stores a driver's rating aggregate in cache.
func (s *CacheStore) SetRating(ctx context.Context, rating *CachedRating) error {
	key := ratingCachePrefix + rating.DriverID
	data, err := json.Marshal(rating)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RatingCacheTTL).Err()
}

// InvalidateRating removes a driver's rating aggregate from cache.
func (s *CacheStore) InvalidateRating(ctx context.Context, driverID string) error {
	key := ratingCachePrefix + driverID
	return s.client.Del(ctx, key).Err()
}

// GetRide retrieves a ride from cache. Returns (nil, nil) on a miss.
func (s *CacheStore) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	key := rideCachePrefix + rideID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var ride domain.Ride
	if err := json.Unmarshal(data, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// SetRide stores a ride in cache. The short TTL bounds how stale a seat
// count can get between bookings.
func (s *CacheStore) SetRide(ctx context.Context, ride *domain.Ride) error {
	key := rideCachePrefix + ride.ID
	data, err := json.Marshal(ride)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, RideCacheTTL).Err()
}

// InvalidateRide removes a ride from cache.
func (s *CacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	key := rideCachePrefix + rideID
	return s.client.Del(ctx, key).Err()
}
