package service

import (
	"log"

	"carpool/internal/domain"
)

// NotificationService delivers booking and ride notifications. The current
// implementation logs; a push/SMS provider slots in behind the same methods.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// BookingRequested notifies the driver of a new seat request.
func (s *NotificationService) BookingRequested(booking *domain.Booking, ride *domain.Ride) {
	if s == nil {
		return
	}
	log.Printf("[notify] driver %s: %d seat(s) requested on ride %s by %s",
		ride.DriverID, booking.Seats, ride.ID, booking.RiderID)
}

// BookingConfirmed notifies the rider that their booking was confirmed.
func (s *NotificationService) BookingConfirmed(booking *domain.Booking, ride *domain.Ride) {
	if s == nil {
		return
	}
	log.Printf("[notify] rider %s: booking %s confirmed for ride %s departing %s %s",
		booking.RiderID, booking.ID, ride.ID, ride.DepartureDate, ride.DepartureTime)
}

// BookingRejected notifies the rider that their booking was rejected.
func (s *NotificationService) BookingRejected(booking *domain.Booking) {
	if s == nil {
		return
	}
	log.Printf("[notify] rider %s: booking %s rejected", booking.RiderID, booking.ID)
}

// RideCancelled notifies affected riders that a ride was cancelled.
func (s *NotificationService) RideCancelled(ride *domain.Ride) {
	if s == nil {
		return
	}
	log.Printf("[notify] ride %s cancelled by driver %s", ride.ID, ride.DriverID)
}
