package domain

import "time"

// BookingStatus represents the current status of a seat booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking represents a rider's request for seats on a posted ride.
type Booking struct {
	ID          string
	RideID      string
	RiderID     string
	RiderName   string
	Seats       int
	Status      BookingStatus
	CreatedAt   time.Time
	ConfirmedAt time.Time
	CancelledAt time.Time
}
