package domain

import "time"

// Rating represents a single rider-submitted rating for a driver.
type Rating struct {
	ID        string
	DriverID  string
	RiderID   string
	RideID    string
	Stars     float64 // 1.0-5.0
	Comment   string
	CreatedAt time.Time
}
