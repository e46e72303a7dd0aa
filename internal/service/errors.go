package service

import "errors"

var (
	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidDriverName is returned when a driver name is empty.
	ErrInvalidDriverName = errors.New("invalid driver name")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidPickupLocation is returned when pickup coordinates are out of range.
	ErrInvalidPickupLocation = errors.New("invalid pickup location")

	// ErrInvalidDropoffLocation is returned when dropoff coordinates are out of range.
	ErrInvalidDropoffLocation = errors.New("invalid dropoff location")

	// ErrInvalidDepartureDate is returned when a departure date is not YYYY-MM-DD.
	ErrInvalidDepartureDate = errors.New("invalid departure date")

	// ErrInvalidDepartureTime is returned when a departure time cannot be parsed.
	ErrInvalidDepartureTime = errors.New("invalid departure time")

	// ErrInvalidSeatCount is returned when a seat count is not positive.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrInvalidPrice is returned when a price per seat is negative.
	ErrInvalidPrice = errors.New("invalid price per seat")

	// ErrInvalidStars is returned when a rating is outside 1-5.
	ErrInvalidStars = errors.New("rating must be between 1 and 5")

	// ErrRideNotActive is returned when an operation requires an ACTIVE ride.
	ErrRideNotActive = errors.New("ride not active")

	// ErrRideAlreadyCancelled is returned when cancelling an already cancelled ride.
	ErrRideAlreadyCancelled = errors.New("ride already cancelled")

	// ErrNoSeatsAvailable is returned when a ride has fewer free seats than requested.
	ErrNoSeatsAvailable = errors.New("not enough seats available")

	// ErrBookingNotPending is returned when confirming or rejecting a booking
	// that is no longer pending.
	ErrBookingNotPending = errors.New("booking not pending")

	// ErrBookingAlreadyClosed is returned when cancelling a booking that is
	// already rejected or cancelled.
	ErrBookingAlreadyClosed = errors.New("booking already closed")

	// ErrRideBusy is returned when another booking operation holds the ride lock.
	ErrRideBusy = errors.New("ride is being updated, retry shortly")
)
