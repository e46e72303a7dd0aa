package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/matching"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// RideService handles the lifecycle of driver-posted rides.
type RideService struct {
	rideRepo      repository.RideRepository
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface
	cacheStore    redis.CacheStoreInterface
	notifier      *NotificationService
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore redis.CacheStoreInterface,
	notifier *NotificationService,
) *RideService {
	return &RideService{
		rideRepo:      rideRepo,
		driverRepo:    driverRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
		notifier:      notifier,
	}
}

// PostRideInput contains the parameters for posting a ride.
type PostRideInput struct {
	DriverID      string
	PickupLat     float64
	PickupLng     float64
	PickupLabel   string
	DropoffLat    float64
	DropoffLng    float64
	DropoffLabel  string
	DepartureDate string
	DepartureTime string
	PricePerSeat  float64
	TotalSeats    int
}

// PostRide validates and persists a new ride, denormalizes the driver's
// current rating onto it, and geo-indexes the pickup point.
func (s *RideService) PostRide(ctx context.Context, input PostRideInput) (*domain.Ride, error) {
	if input.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if !validCoordinates(input.PickupLat, input.PickupLng) {
		return nil, ErrInvalidPickupLocation
	}
	if !validCoordinates(input.DropoffLat, input.DropoffLng) {
		return nil, ErrInvalidDropoffLocation
	}
	if _, err := matching.DaysApart(input.DepartureDate, input.DepartureDate); err != nil {
		return nil, ErrInvalidDepartureDate
	}
	if _, err := matching.ParseClockTime(input.DepartureTime); err != nil {
		return nil, ErrInvalidDepartureTime
	}
	if input.PricePerSeat < 0 {
		return nil, ErrInvalidPrice
	}
	if input.TotalSeats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	driver, err := s.driverRepo.GetByID(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:             uuid.NewString(),
		DriverID:       driver.ID,
		DriverName:     driver.Name,
		DriverPhone:    driver.Phone,
		DriverRating:   driver.Rating,
		RatingCount:    driver.RatingCount,
		PickupLat:      input.PickupLat,
		PickupLng:      input.PickupLng,
		PickupLabel:    input.PickupLabel,
		DropoffLat:     input.DropoffLat,
		DropoffLng:     input.DropoffLng,
		DropoffLabel:   input.DropoffLabel,
		DepartureDate:  input.DepartureDate,
		DepartureTime:  input.DepartureTime,
		PricePerSeat:   input.PricePerSeat,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		Status:         domain.RideStatusActive,
		CreatedAt:      time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	// Index the pickup point; search degrades to full scans without it.
	if s.locationStore != nil {
		if err := s.locationStore.IndexRide(ctx, ride.ID, ride.PickupLat, ride.PickupLng); err != nil {
			log.Printf("failed to geo-index ride %s: %v", ride.ID, err)
		}
	}

	return ride, nil
}

// GetRide retrieves a ride by ID, served from cache when possible. Seat
// changes and lifecycle transitions invalidate the cached entry.
func (s *RideService) GetRide(ctx context.Context, id string) (*domain.Ride, error) {
	if id == "" {
		return nil, ErrInvalidRideID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetRide(ctx, id)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetRide(ctx, ride)
	}

	return ride, nil
}

// GetAllRides retrieves all rides.
func (s *RideService) GetAllRides(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.GetAll(ctx)
}

// CancelRide cancels an active ride and removes it from the search pool.
func (s *RideService) CancelRide(ctx context.Context, id string) (*domain.Ride, error) {
	if id == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch ride.Status {
	case domain.RideStatusCancelled:
		return nil, ErrRideAlreadyCancelled
	case domain.RideStatusCompleted:
		return nil, ErrRideNotActive
	}

	ride.Status = domain.RideStatusCancelled
	ride.CancelledAt = time.Now()

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	s.removeFromSearchPool(ctx, ride.ID)
	s.notifier.RideCancelled(ride)
	return ride, nil
}

// CompleteRide marks an active ride as completed and removes it from the
// search pool.
func (s *RideService) CompleteRide(ctx context.Context, id string) (*domain.Ride, error) {
	if id == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}

	ride.Status = domain.RideStatusCompleted

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		return nil, err
	}

	s.removeFromSearchPool(ctx, ride.ID)
	return ride, nil
}

func (s *RideService) removeFromSearchPool(ctx context.Context, rideID string) {
	if s.locationStore != nil {
		if err := s.locationStore.RemoveRide(ctx, rideID); err != nil {
			log.Printf("failed to remove ride %s from geo index: %v", rideID, err)
		}
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateRide(ctx, rideID)
	}
}
