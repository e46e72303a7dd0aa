package tests

import (
	"context"
	"errors"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

func newRideFixture() (*service.RideService, *MockRideRepository, *MockDriverRepository, *MockLocationStore) {
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	svc := service.NewRideService(rideRepo, driverRepo, locationStore, nil, nil)
	return svc, rideRepo, driverRepo, locationStore
}

func validPostInput() service.PostRideInput {
	return service.PostRideInput{
		DriverID:      "driver-1",
		PickupLat:     26.0667,
		PickupLng:     50.5577,
		PickupLabel:   "University Gate 1",
		DropoffLat:    26.2285,
		DropoffLng:    50.5860,
		DropoffLabel:  "Seef District",
		DepartureDate: "2025-06-01",
		DepartureTime: "3:00 PM",
		PricePerSeat:  3,
		TotalSeats:    3,
	}
}

func TestRide_PostDenormalizesDriverAndIndexesPickup(t *testing.T) {
	ctx := context.Background()
	svc, rideRepo, driverRepo, locationStore := newRideFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali", Rating: 4.8, RatingCount: 21})

	ride, err := svc.PostRide(ctx, validPostInput())
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	if ride.ID == "" {
		t.Error("ride ID not assigned")
	}
	if ride.Status != domain.RideStatusActive {
		t.Errorf("status = %s, want ACTIVE", ride.Status)
	}
	if ride.DriverName != "Ali" || ride.DriverRating != 4.8 || ride.RatingCount != 21 {
		t.Errorf("driver not denormalized: %q %v %d", ride.DriverName, ride.DriverRating, ride.RatingCount)
	}
	if ride.AvailableSeats != 3 {
		t.Errorf("available seats = %d, want 3", ride.AvailableSeats)
	}

	stored, err := rideRepo.GetByID(ctx, ride.ID)
	if err != nil {
		t.Fatalf("ride not persisted: %v", err)
	}
	if stored.DepartureTime != "3:00 PM" {
		t.Errorf("stored departure time = %q", stored.DepartureTime)
	}

	pickups, _ := locationStore.FindNearbyRides(ctx, 26.0667, 50.5577, 50)
	if len(pickups) != 1 || pickups[0].RideID != ride.ID {
		t.Errorf("pickup not geo-indexed: %+v", pickups)
	}
}

func TestRide_PostAcceptsTwentyFourHourTime(t *testing.T) {
	ctx := context.Background()
	svc, _, driverRepo, _ := newRideFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	input := validPostInput()
	input.DepartureTime = "15:00"

	if _, err := svc.PostRide(ctx, input); err != nil {
		t.Errorf("post with 24-hour time failed: %v", err)
	}
}

func TestRide_PostValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, driverRepo, _ := newRideFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	cases := []struct {
		name    string
		mutate  func(*service.PostRideInput)
		wantErr error
	}{
		{"empty driver", func(in *service.PostRideInput) { in.DriverID = "" }, service.ErrInvalidDriverID},
		{"bad pickup", func(in *service.PostRideInput) { in.PickupLat = 91 }, service.ErrInvalidPickupLocation},
		{"bad dropoff", func(in *service.PostRideInput) { in.DropoffLng = 181 }, service.ErrInvalidDropoffLocation},
		{"bad date", func(in *service.PostRideInput) { in.DepartureDate = "June 1st" }, service.ErrInvalidDepartureDate},
		{"bad time", func(in *service.PostRideInput) { in.DepartureTime = "25:00" }, service.ErrInvalidDepartureTime},
		{"negative price", func(in *service.PostRideInput) { in.PricePerSeat = -1 }, service.ErrInvalidPrice},
		{"zero seats", func(in *service.PostRideInput) { in.TotalSeats = 0 }, service.ErrInvalidSeatCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validPostInput()
			tc.mutate(&input)
			if _, err := svc.PostRide(ctx, input); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRide_GetServesRepeatReadsFromCache(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()
	cacheStore := NewMockCacheStore()
	svc := service.NewRideService(rideRepo, driverRepo, nil, cacheStore, nil)

	rideRepo.AddRide(activeRide("ride-1", 26.0667, 50.5577))

	// First read misses the cache, hits the repo, and populates the cache.
	first, err := svc.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rideRepo.GetByIDCallCount != 1 {
		t.Errorf("repo reads after first get = %d, want 1", rideRepo.GetByIDCallCount)
	}
	if cacheStore.SetRideCallCount != 1 {
		t.Errorf("cache writes after first get = %d, want 1", cacheStore.SetRideCallCount)
	}

	// Second read is served from cache without touching the repo.
	second, err := svc.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("cached get failed: %v", err)
	}
	if rideRepo.GetByIDCallCount != 1 {
		t.Errorf("repo reads after cached get = %d, want 1", rideRepo.GetByIDCallCount)
	}
	if second.ID != first.ID || second.AvailableSeats != first.AvailableSeats {
		t.Errorf("cached ride differs: %+v vs %+v", second, first)
	}
}

func TestRide_CancelInvalidatesCachedRide(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	driverRepo := NewMockDriverRepository()
	cacheStore := NewMockCacheStore()
	svc := service.NewRideService(rideRepo, driverRepo, nil, cacheStore, nil)

	rideRepo.AddRide(activeRide("ride-1", 26.0667, 50.5577))

	if _, err := svc.GetRide(ctx, "ride-1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, err := svc.CancelRide(ctx, "ride-1"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cacheStore.InvalidateRideCallCount == 0 {
		t.Error("cancel did not invalidate the cached ride")
	}

	// A fresh read must see the cancelled status, not the stale cache entry.
	ride, err := svc.GetRide(ctx, "ride-1")
	if err != nil {
		t.Fatalf("get after cancel failed: %v", err)
	}
	if ride.Status != domain.RideStatusCancelled {
		t.Errorf("status after cancel = %s, want CANCELLED", ride.Status)
	}
}

func TestRide_CancelRemovesFromSearchPool(t *testing.T) {
	ctx := context.Background()
	svc, _, driverRepo, locationStore := newRideFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	ride, err := svc.PostRide(ctx, validPostInput())
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	cancelled, err := svc.CancelRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.RideStatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if cancelled.CancelledAt.IsZero() {
		t.Error("CancelledAt not set")
	}

	pickups, _ := locationStore.FindNearbyRides(ctx, 26.0667, 50.5577, 50)
	if len(pickups) != 0 {
		t.Errorf("cancelled ride still geo-indexed: %+v", pickups)
	}

	if _, err := svc.CancelRide(ctx, ride.ID); !errors.Is(err, service.ErrRideAlreadyCancelled) {
		t.Errorf("second cancel: got %v, want ErrRideAlreadyCancelled", err)
	}
}

func TestRide_CompleteTransitions(t *testing.T) {
	ctx := context.Background()
	svc, _, driverRepo, _ := newRideFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	ride, err := svc.PostRide(ctx, validPostInput())
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}

	completed, err := svc.CompleteRide(ctx, ride.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != domain.RideStatusCompleted {
		t.Errorf("status = %s, want COMPLETED", completed.Status)
	}

	if _, err := svc.CompleteRide(ctx, ride.ID); !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("second complete: got %v, want ErrRideNotActive", err)
	}
	if _, err := svc.CancelRide(ctx, ride.ID); !errors.Is(err, service.ErrRideNotActive) {
		t.Errorf("cancel completed ride: got %v, want ErrRideNotActive", err)
	}
}
