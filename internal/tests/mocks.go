package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of repository.RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount  int32
	GetByIDCallCount int32
	UpdateCallCount  int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{rides: make(map[string]*domain.Ride)}
}

// AddRide seeds a ride into the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetAll(ctx context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rides := make([]*domain.Ride, 0, len(m.rides))
	for _, r := range m.rides {
		copy := *r
		rides = append(rides, &copy)
	}
	return rides, nil
}

func (m *MockRideRepository) GetActive(ctx context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rides []*domain.Ride
	for _, r := range m.rides {
		if r.Status == domain.RideStatusActive && r.AvailableSeats > 0 {
			copy := *r
			rides = append(rides, &copy)
		}
	}
	return rides, nil
}

func (m *MockRideRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rides []*domain.Ride
	for _, id := range ids {
		r, ok := m.rides[id]
		if !ok {
			continue
		}
		if r.Status == domain.RideStatusActive && r.AvailableSeats > 0 {
			copy := *r
			rides = append(rides, &copy)
		}
	}
	return rides, nil
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) UpdateDriverRating(ctx context.Context, driverID string, rating float64, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rides {
		if r.DriverID == driverID {
			r.DriverRating = rating
			r.RatingCount = count
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of repository.BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	CreateCallCount int32
	UpdateCallCount int32

	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{bookings: make(map[string]*domain.Booking)}
}

// AddBooking seeds a booking into the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByRide(ctx context.Context, rideID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bookings []*domain.Booking
	for _, b := range m.bookings {
		if b.RideID == rideID {
			copy := *b
			bookings = append(bookings, &copy)
		}
	}
	return bookings, nil
}

func (m *MockBookingRepository) GetByRider(ctx context.Context, riderID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bookings []*domain.Booking
	for _, b := range m.bookings {
		if b.RiderID == riderID {
			copy := *b
			bookings = append(bookings, &copy)
		}
	}
	return bookings, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER + RATING REPOSITORIES
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of repository.DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	UpdateRatingCallCount int32
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{drivers: make(map[string]*domain.Driver)}
}

// AddDriver seeds a driver into the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) UpdateRating(ctx context.Context, driverID string, rating float64, count int) error {
	atomic.AddInt32(&m.UpdateRatingCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[driverID]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Rating = rating
	driver.RatingCount = count
	return nil
}

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings []*domain.Rating
}

// NewMockRatingRepository creates a new mock rating repository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{}
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rating
	m.ratings = append(m.ratings, &copy)
	return nil
}

func (m *MockRatingRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ratings []*domain.Rating
	for _, r := range m.ratings {
		if r.DriverID == driverID {
			copy := *r
			ratings = append(ratings, &copy)
		}
	}
	return ratings, nil
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of redis.LocationStoreInterface.
type MockLocationStore struct {
	mu      sync.RWMutex
	pickups []redis.RidePickup

	// Error injection
	FindError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{}
}

// SetPickups replaces the indexed pickup points.
func (m *MockLocationStore) SetPickups(pickups []redis.RidePickup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickups = pickups
}

func (m *MockLocationStore) IndexRide(ctx context.Context, rideID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pickups = append(m.pickups, redis.RidePickup{RideID: rideID, Lat: lat, Lng: lng})
	return nil
}

// FindNearbyRides returns every indexed pickup; radius filtering is the real
// store's concern, not the mock's.
func (m *MockLocationStore) FindNearbyRides(ctx context.Context, lat, lng, radiusKm float64) ([]redis.RidePickup, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]redis.RidePickup(nil), m.pickups...), nil
}

func (m *MockLocationStore) RemoveRide(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pickups {
		if p.RideID == rideID {
			m.pickups = append(m.pickups[:i], m.pickups[i+1:]...)
			return nil
		}
	}
	return nil
}

// MockLockStore is a mock implementation of redis.LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// ForceLocked makes every acquisition fail, simulating contention.
	ForceLocked bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireRideLock(ctx context.Context, rideID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceLocked || m.locks[rideID] {
		return false, nil
	}
	m.locks[rideID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseRideLock(ctx context.Context, rideID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, rideID)
	return nil
}

// MockCacheStore is a mock implementation of redis.CacheStoreInterface.
type MockCacheStore struct {
	mu      sync.RWMutex
	ratings map[string]*redis.CachedRating
	rides   map[string]*domain.Ride

	// Counters for verification
	SetRideCallCount        int32
	InvalidateRideCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		ratings: make(map[string]*redis.CachedRating),
		rides:   make(map[string]*domain.Ride),
	}
}

func (m *MockCacheStore) GetRating(ctx context.Context, driverID string) (*redis.CachedRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rating, ok := m.ratings[driverID]
	if !ok {
		return nil, nil
	}
	copy := *rating
	return &copy, nil
}

func (m *MockCacheStore) SetRating(ctx context.Context, rating *redis.CachedRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings[rating.DriverID] = rating
	return nil
}

func (m *MockCacheStore) InvalidateRating(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ratings, driverID)
	return nil
}

func (m *MockCacheStore) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, nil
	}
	copy := *ride
	return &copy, nil
}

func (m *MockCacheStore) SetRide(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.SetRideCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	return nil
}

func (m *MockCacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	atomic.AddInt32(&m.InvalidateRideCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, rideID)
	return nil
}
