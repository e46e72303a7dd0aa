package service

import (
	"context"
	"log"

	"carpool/internal/domain"
	"carpool/internal/matching"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// defaultPrefilterRadiusKm bounds the geo prefilter. It is deliberately much
// wider than the pickup-score decay distance: a ride with a far pickup can
// still clear the score threshold on its other components, so the prefilter
// must only cut candidates that could never matter at campus scale.
const defaultPrefilterRadiusKm = 50.0

// SearchService produces ranked ride recommendations for a rider's search.
type SearchService struct {
	rideRepo          repository.RideRepository
	locationStore     redis.LocationStoreInterface
	prefilterRadiusKm float64
}

// NewSearchService creates a new SearchService. locationStore may be nil, in
// which case every search scans the full active-ride pool.
func NewSearchService(rideRepo repository.RideRepository, locationStore redis.LocationStoreInterface) *SearchService {
	return &SearchService{
		rideRepo:          rideRepo,
		locationStore:     locationStore,
		prefilterRadiusKm: defaultPrefilterRadiusKm,
	}
}

// Search fetches the candidate pool and ranks it against the rider's intent.
// Geo-index failures degrade to a full scan rather than failing the search.
func (s *SearchService) Search(ctx context.Context, intent matching.SearchIntent, prefs matching.Preferences, order matching.SortOrder) ([]matching.Match, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}

	candidates, err := s.candidatePool(ctx, intent)
	if err != nil {
		return nil, err
	}

	return matching.Recommend(candidates, intent, prefs, order), nil
}

// candidatePool prefilters candidates by pickup radius via the geo index,
// falling back to the full active pool when the index is unavailable.
func (s *SearchService) candidatePool(ctx context.Context, intent matching.SearchIntent) ([]*domain.Ride, error) {
	if s.locationStore == nil {
		return s.rideRepo.GetActive(ctx)
	}

	pickups, err := s.locationStore.FindNearbyRides(ctx, intent.PickupLat, intent.PickupLng, s.prefilterRadiusKm)
	if err != nil {
		log.Printf("geo prefilter unavailable, scanning all active rides: %v", err)
		return s.rideRepo.GetActive(ctx)
	}
	if len(pickups) == 0 {
		return nil, nil
	}

	ids := make([]string, len(pickups))
	for i, p := range pickups {
		ids[i] = p.RideID
	}
	return s.rideRepo.GetActiveByIDs(ctx, ids)
}

func validateIntent(intent matching.SearchIntent) error {
	if !validCoordinates(intent.PickupLat, intent.PickupLng) {
		return ErrInvalidPickupLocation
	}
	if !validCoordinates(intent.DropoffLat, intent.DropoffLng) {
		return ErrInvalidDropoffLocation
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
