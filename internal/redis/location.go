package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ridePickupKey = "rides:pickups"

// RidePickup represents a geo-indexed ride pickup point.
type RidePickup struct {
	RideID string
	Lat    float64
	Lng    float64
}

// LocationStore geo-indexes the pickup points of active rides so searches
// can prefilter the candidate pool by radius.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// IndexRide stores a ride's pickup point using GEOADD.
func (s *LocationStore) IndexRide(ctx context.Context, rideID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, ridePickupKey, &redis.GeoLocation{
		Name:      rideID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// FindNearbyRides returns ride IDs whose pickup point lies within the given
// radius (in kilometers), closest first.
func (s *LocationStore) FindNearbyRides(ctx context.Context, lat, lng, radiusKm float64) ([]RidePickup, error) {
	results, err := s.client.GeoRadius(ctx, ridePickupKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	pickups := make([]RidePickup, 0, len(results))
	for _, r := range results {
		pickups = append(pickups, RidePickup{
			RideID: r.Name,
			Lat:    r.Latitude,
			Lng:    r.Longitude,
		})
	}

	return pickups, nil
}

// RemoveRide removes a ride's pickup point from the geo index.
func (s *LocationStore) RemoveRide(ctx context.Context, rideID string) error {
	return s.client.ZRem(ctx, ridePickupKey, rideID).Err()
}
