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

// RatingService handles rating submission and driver-reputation aggregation.
type RatingService struct {
	db         *sql.DB
	ratingRepo repository.RatingRepository
	driverRepo repository.DriverRepository
	rideRepo   repository.RideRepository
	cacheStore redis.CacheStoreInterface
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	db *sql.DB,
	ratingRepo repository.RatingRepository,
	driverRepo repository.DriverRepository,
	rideRepo repository.RideRepository,
	cacheStore redis.CacheStoreInterface,
) *RatingService {
	return &RatingService{
		db:         db,
		ratingRepo: ratingRepo,
		driverRepo: driverRepo,
		rideRepo:   rideRepo,
		cacheStore: cacheStore,
	}
}

// SubmitRatingInput contains the parameters for submitting a rating.
type SubmitRatingInput struct {
	DriverID string
	RiderID  string
	RideID   string
	Stars    float64
	Comment  string
}

// SubmitRating records a rating and folds it into the driver's running
// average. The rating row, the driver aggregate, and the denormalized rating
// on the driver's posted rides commit in one transaction.
func (s *RatingService) SubmitRating(ctx context.Context, input SubmitRatingInput) (*domain.Rating, error) {
	if input.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if input.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if input.Stars < 1 || input.Stars > 5 {
		return nil, ErrInvalidStars
	}

	driver, err := s.driverRepo.GetByID(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ID:        uuid.NewString(),
		DriverID:  input.DriverID,
		RiderID:   input.RiderID,
		RideID:    input.RideID,
		Stars:     input.Stars,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	newCount := driver.RatingCount + 1
	newAvg := (driver.Rating*float64(driver.RatingCount) + input.Stars) / float64(newCount)

	if err := s.applyRating(ctx, rating, newAvg, newCount); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateRating(ctx, input.DriverID)
	}

	return rating, nil
}

// GetDriverRating returns a driver's aggregated rating, served from cache
// when possible.
func (s *RatingService) GetDriverRating(ctx context.Context, driverID string) (float64, int, error) {
	if driverID == "" {
		return 0, 0, ErrInvalidDriverID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetRating(ctx, driverID)
		if err == nil && cached != nil {
			return cached.Rating, cached.Count, nil
		}
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return 0, 0, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetRating(ctx, &redis.CachedRating{
			DriverID: driverID,
			Rating:   driver.Rating,
			Count:    driver.RatingCount,
		})
	}

	return driver.Rating, driver.RatingCount, nil
}

// GetDriverRatings lists the individual ratings submitted for a driver.
func (s *RatingService) GetDriverRatings(ctx context.Context, driverID string) ([]*domain.Rating, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.ratingRepo.GetByDriver(ctx, driverID)
}

// applyRating commits the rating row and both rating aggregates in one
// transaction. Without a *sql.DB (tests), it falls back to sequential
// repository updates.
func (s *RatingService) applyRating(ctx context.Context, rating *domain.Rating, avg float64, count int) error {
	if s.db == nil {
		if err := s.ratingRepo.Create(ctx, rating); err != nil {
			return err
		}
		if err := s.driverRepo.UpdateRating(ctx, rating.DriverID, avg, count); err != nil {
			return err
		}
		return s.rideRepo.UpdateDriverRating(ctx, rating.DriverID, avg, count)
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

	txRatingRepo := postgres.NewRatingRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
	txRideRepo := postgres.NewRideRepositoryWithTx(tx)

	if err = txRatingRepo.Create(ctx, rating); err != nil {
		return err
	}
	if err = txDriverRepo.UpdateRating(ctx, rating.DriverID, avg, count); err != nil {
		return err
	}
	if err = txRideRepo.UpdateDriverRating(ctx, rating.DriverID, avg, count); err != nil {
		return err
	}

	return tx.Commit()
}
