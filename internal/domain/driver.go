package domain

import "time"

// Driver represents a driver profile with its aggregated reputation.
type Driver struct {
	ID          string
	Name        string
	Phone       string
	Rating      float64 // running average of submitted stars, 1.0-5.0
	RatingCount int
	CreatedAt   time.Time
}
