package domain

import "time"

// RideStatus represents the lifecycle state of a posted ride.
type RideStatus string

const (
	RideStatusActive    RideStatus = "ACTIVE"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// Ride represents a driver-posted carpool ride that riders can search and book.
// Driver display fields are denormalized onto the ride row so a search result
// can be rendered without a second lookup.
type Ride struct {
	ID           string
	DriverID     string
	DriverName   string
	DriverPhone  string
	DriverRating float64 // aggregate 1.0-5.0; meaningful only when RatingCount > 0
	RatingCount  int

	PickupLat   float64
	PickupLng   float64
	PickupLabel string

	DropoffLat   float64
	DropoffLng   float64
	DropoffLabel string

	// DepartureDate is "YYYY-MM-DD"; DepartureTime is clock time as entered
	// by the driver ("3:00 PM" or "15:00").
	DepartureDate string
	DepartureTime string

	PricePerSeat   float64
	TotalSeats     int
	AvailableSeats int

	Status      RideStatus
	CreatedAt   time.Time
	CancelledAt time.Time
}

// HasRating reports whether the driver has at least one aggregated rating.
func (r *Ride) HasRating() bool {
	return r.RatingCount > 0
}
