package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
	"carpool/internal/repository/postgres"
)

// rideLockTTL bounds how long a seat confirmation can hold the ride lock.
const rideLockTTL = 10 * time.Second

// BookingService handles the seat-booking lifecycle: request, confirm,
// reject, cancel.
type BookingService struct {
	db          *sql.DB
	bookingRepo repository.BookingRepository
	rideRepo    repository.RideRepository
	lockStore   redis.LockStoreInterface
	cacheStore  redis.CacheStoreInterface
	notifier    *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	db *sql.DB,
	bookingRepo repository.BookingRepository,
	rideRepo repository.RideRepository,
	lockStore redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		db:          db,
		bookingRepo: bookingRepo,
		rideRepo:    rideRepo,
		lockStore:   lockStore,
		cacheStore:  cacheStore,
		notifier:    notifier,
	}
}

// RequestBooking creates a PENDING booking for seats on an active ride.
// Seats are not reserved until the driver confirms.
func (s *BookingService) RequestBooking(ctx context.Context, rideID, riderID, riderName string, seats int) (*domain.Booking, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	if seats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}
	if ride.AvailableSeats < seats {
		return nil, ErrNoSeatsAvailable
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		RideID:    rideID,
		RiderID:   riderID,
		RiderName: riderName,
		Seats:     seats,
		Status:    domain.BookingStatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.notifier.BookingRequested(booking, ride)
	return booking, nil
}

// ConfirmBooking confirms a pending booking and reserves its seats. A
// per-ride lock serializes confirmations so two bookings cannot claim the
// same seat; the decrement and status change commit in one transaction.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrBookingNotPending
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, booking.RideID, rideLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrRideBusy
		}
		defer s.lockStore.ReleaseRideLock(ctx, booking.RideID)
	}

	ride, err := s.rideRepo.GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != domain.RideStatusActive {
		return nil, ErrRideNotActive
	}
	if ride.AvailableSeats < booking.Seats {
		return nil, ErrNoSeatsAvailable
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.ConfirmedAt = time.Now()
	ride.AvailableSeats -= booking.Seats

	if err := s.applySeatChange(ctx, ride, booking); err != nil {
		return nil, err
	}

	s.invalidateRideCache(ctx, ride.ID)
	s.notifier.BookingConfirmed(booking, ride)
	return booking, nil
}

// RejectBooking rejects a pending booking.
func (s *BookingService) RejectBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrBookingNotPending
	}

	booking.Status = domain.BookingStatusRejected

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifier.BookingRejected(booking)
	return booking, nil
}

// CancelBooking cancels a pending or confirmed booking. Cancelling a
// confirmed booking returns its seats to the ride.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case domain.BookingStatusPending:
		booking.Status = domain.BookingStatusCancelled
		booking.CancelledAt = time.Now()
		if err := s.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		return booking, nil
	case domain.BookingStatusConfirmed:
		// Fall through to the seat-returning path below.
	default:
		return nil, ErrBookingAlreadyClosed
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRideLock(ctx, booking.RideID, rideLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrRideBusy
		}
		defer s.lockStore.ReleaseRideLock(ctx, booking.RideID)
	}

	ride, err := s.rideRepo.GetByID(ctx, booking.RideID)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled
	booking.CancelledAt = time.Now()
	ride.AvailableSeats += booking.Seats
	if ride.AvailableSeats > ride.TotalSeats {
		ride.AvailableSeats = ride.TotalSeats
	}

	if err := s.applySeatChange(ctx, ride, booking); err != nil {
		return nil, err
	}

	s.invalidateRideCache(ctx, ride.ID)
	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, ErrInvalidBookingID
	}
	return s.bookingRepo.GetByID(ctx, id)
}

// GetBookingsForRide retrieves all bookings for a ride.
func (s *BookingService) GetBookingsForRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.bookingRepo.GetByRide(ctx, rideID)
}

// GetBookingsForRider retrieves all bookings made by a rider.
func (s *BookingService) GetBookingsForRider(ctx context.Context, riderID string) ([]*domain.Booking, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	return s.bookingRepo.GetByRider(ctx, riderID)
}

// applySeatChange commits a ride seat update and booking status change in a
// single transaction. Without a *sql.DB (tests), it falls back to sequential
// repository updates.
func (s *BookingService) applySeatChange(ctx context.Context, ride *domain.Ride, booking *domain.Booking) error {
	if s.db == nil {
		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}
		return s.bookingRepo.Update(ctx, booking)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txRideRepo := postgres.NewRideRepositoryWithTx(tx)
	txBookingRepo := postgres.NewBookingRepositoryWithTx(tx)

	if err = txRideRepo.Update(ctx, ride); err != nil {
		return err
	}
	if err = txBookingRepo.Update(ctx, booking); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BookingService) invalidateRideCache(ctx context.Context, rideID string) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateRide(ctx, rideID)
}
