package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

func newRatingFixture() (*service.RatingService, *MockDriverRepository, *MockRideRepository, *MockRatingRepository) {
	driverRepo := NewMockDriverRepository()
	rideRepo := NewMockRideRepository()
	ratingRepo := NewMockRatingRepository()
	svc := service.NewRatingService(nil, ratingRepo, driverRepo, rideRepo, nil)
	return svc, driverRepo, rideRepo, ratingRepo
}

func TestRating_FirstRatingSetsAverage(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, _, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	rating, err := svc.SubmitRating(ctx, service.SubmitRatingInput{
		DriverID: "driver-1",
		RiderID:  "rider-1",
		Stars:    4,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if rating.ID == "" {
		t.Error("rating ID not assigned")
	}

	driver, _ := driverRepo.GetByID(ctx, "driver-1")
	if driver.Rating != 4 || driver.RatingCount != 1 {
		t.Errorf("aggregate = (%v, %d), want (4, 1)", driver.Rating, driver.RatingCount)
	}
}

func TestRating_RunningAverage(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, _, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	for i, stars := range []float64{5, 3, 4} {
		if _, err := svc.SubmitRating(ctx, service.SubmitRatingInput{
			DriverID: "driver-1",
			RiderID:  "rider-1",
			Stars:    stars,
		}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	driver, _ := driverRepo.GetByID(ctx, "driver-1")
	if driver.RatingCount != 3 {
		t.Errorf("count = %d, want 3", driver.RatingCount)
	}
	if math.Abs(driver.Rating-4.0) > 1e-9 {
		t.Errorf("average = %v, want 4.0", driver.Rating)
	}
}

func TestRating_DenormalizesOntoActiveRides(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, rideRepo, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	ride := activeRide("ride-1", 26.0667, 50.5577)
	ride.DriverID = "driver-1"
	ride.DriverRating = 0
	ride.RatingCount = 0
	rideRepo.AddRide(ride)

	if _, err := svc.SubmitRating(ctx, service.SubmitRatingInput{
		DriverID: "driver-1",
		RiderID:  "rider-1",
		Stars:    5,
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, _ := rideRepo.GetByID(ctx, "ride-1")
	if updated.DriverRating != 5 || updated.RatingCount != 1 {
		t.Errorf("ride rating = (%v, %d), want (5, 1)", updated.DriverRating, updated.RatingCount)
	}
}

func TestRating_Validation(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, _, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})

	cases := []struct {
		name    string
		input   service.SubmitRatingInput
		wantErr error
	}{
		{"empty driver", service.SubmitRatingInput{RiderID: "rider-1", Stars: 4}, service.ErrInvalidDriverID},
		{"empty rider", service.SubmitRatingInput{DriverID: "driver-1", Stars: 4}, service.ErrInvalidRiderID},
		{"zero stars", service.SubmitRatingInput{DriverID: "driver-1", RiderID: "rider-1", Stars: 0}, service.ErrInvalidStars},
		{"six stars", service.SubmitRatingInput{DriverID: "driver-1", RiderID: "rider-1", Stars: 6}, service.ErrInvalidStars},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SubmitRating(ctx, tc.input); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRating_ListsIndividualRatings(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, _, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali"})
	driverRepo.AddDriver(&domain.Driver{ID: "driver-2", Name: "Huda"})

	for _, in := range []service.SubmitRatingInput{
		{DriverID: "driver-1", RiderID: "rider-1", Stars: 5, Comment: "smooth ride"},
		{DriverID: "driver-1", RiderID: "rider-2", Stars: 3},
		{DriverID: "driver-2", RiderID: "rider-1", Stars: 4},
	} {
		if _, err := svc.SubmitRating(ctx, in); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	ratings, err := svc.GetDriverRatings(ctx, "driver-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("got %d ratings, want 2", len(ratings))
	}
	for _, r := range ratings {
		if r.DriverID != "driver-1" {
			t.Errorf("rating %s belongs to driver %s, want driver-1", r.ID, r.DriverID)
		}
	}

	if _, err := svc.GetDriverRatings(ctx, ""); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("empty driver id: got %v, want ErrInvalidDriverID", err)
	}
}

func TestRating_GetDriverRating(t *testing.T) {
	ctx := context.Background()
	svc, driverRepo, _, _ := newRatingFixture()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Name: "Ali", Rating: 4.6, RatingCount: 12})

	rating, count, err := svc.GetDriverRating(ctx, "driver-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rating != 4.6 || count != 12 {
		t.Errorf("got (%v, %d), want (4.6, 12)", rating, count)
	}
}
