package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// DriverService handles driver profile registration and lookup.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// Register creates a new driver profile with no ratings yet.
func (s *DriverService) Register(ctx context.Context, name, phone string) (*domain.Driver, error) {
	if name == "" {
		return nil, ErrInvalidDriverName
	}

	driver := &domain.Driver{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetDriver retrieves a driver profile by ID.
func (s *DriverService) GetDriver(ctx context.Context, id string) (*domain.Driver, error) {
	if id == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, id)
}
