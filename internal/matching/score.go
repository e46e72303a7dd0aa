package matching

import (
	"math"

	"carpool/internal/domain"
)

// Component weight caps. Departure-time alignment carries the largest
// weight; the five caps sum to the 100-point scoring ceiling.
const (
	pickupWeight  = 20.0
	dropoffWeight = 20.0
	timeWeight    = 30.0
	priceWeight   = 15.0
	ratingWeight  = 15.0
)

// nextDayTimeScore is the flat reduced-confidence score for rides departing
// exactly one calendar day away from the requested date.
const nextDayTimeScore = 5.0

// defaultDriverRating substitutes for drivers with no aggregated rating yet.
const defaultDriverRating = 4.0

// TimeDiffUnknown marks a time difference that could not be computed because
// a departure time or date failed to parse. The time component scores zero
// in that case; the failure is never aliased to a valid time of day.
const TimeDiffUnknown = -1

// Preferences are the caller-tunable thresholds governing score decay and
// filtering.
type Preferences struct {
	MaxPickupDistanceKm  float64 // pickup-proximity score reaches 0 at this distance
	MaxDropoffDistanceKm float64 // same for dropoff
	MaxTimeDifferenceMin float64 // same-day time score reaches 0 at this gap
	MaxPriceBudget       float64 // price score reaches 0 at this price
	MinDriverRating      float64 // rides by drivers rated below this are excluded
	MinMatchScore        float64 // rides scoring below this are excluded
}

// DefaultPreferences returns the documented default thresholds.
func DefaultPreferences() Preferences {
	return Preferences{
		MaxPickupDistanceKm:  5,
		MaxDropoffDistanceKm: 5,
		MaxTimeDifferenceMin: 60,
		MaxPriceBudget:       10,
		MinDriverRating:      3,
		MinMatchScore:        40,
	}
}

// SearchIntent is a rider's one-shot search query.
type SearchIntent struct {
	PickupLat  float64
	PickupLng  float64
	DropoffLat float64
	DropoffLng float64
	Date       string // "YYYY-MM-DD"
	Time       string // "3:00 PM" or "15:00"
}

// Score is the five-component weighted evaluation of one candidate ride
// against one search intent. All values are rounded to one decimal place.
type Score struct {
	Total float64 `json:"total"`

	Pickup  float64 `json:"pickup"`
	Dropoff float64 `json:"dropoff"`
	Time    float64 `json:"time"`
	Price   float64 `json:"price"`
	Rating  float64 `json:"rating"`

	PickupDistanceKm  float64 `json:"pickup_distance_km"`
	DropoffDistanceKm float64 `json:"dropoff_distance_km"`

	// TimeDiffMin is the absolute departure-time gap in minutes, or
	// TimeDiffUnknown when either side's time or date failed to parse.
	TimeDiffMin int `json:"time_diff_min"`
}

// ScoreRide evaluates one candidate ride against a search intent. It is pure:
// inputs are never mutated and identical inputs produce identical scores.
func ScoreRide(ride *domain.Ride, intent SearchIntent, prefs Preferences) Score {
	pickupDist := DistanceKm(intent.PickupLat, intent.PickupLng, ride.PickupLat, ride.PickupLng)
	dropoffDist := DistanceKm(intent.DropoffLat, intent.DropoffLng, ride.DropoffLat, ride.DropoffLng)

	pickupScore := decayScore(pickupDist, prefs.MaxPickupDistanceKm, pickupWeight)
	dropoffScore := decayScore(dropoffDist, prefs.MaxDropoffDistanceKm, dropoffWeight)
	timeScore, timeDiff := scoreTime(ride, intent, prefs)
	priceScore := decayScore(ride.PricePerSeat, prefs.MaxPriceBudget, priceWeight)
	ratingScore := (effectiveRating(ride) / 5) * ratingWeight

	total := pickupScore + dropoffScore + timeScore + priceScore + ratingScore

	return Score{
		Total:             round1(total),
		Pickup:            round1(pickupScore),
		Dropoff:           round1(dropoffScore),
		Time:              round1(timeScore),
		Price:             round1(priceScore),
		Rating:            round1(ratingScore),
		PickupDistanceKm:  round1(pickupDist),
		DropoffDistanceKm: round1(dropoffDist),
		TimeDiffMin:       timeDiff,
	}
}

// scoreTime computes the time component and the raw minute gap.
// Same calendar day decays linearly over the allowed window; exactly one day
// away earns the flat reduced-confidence score; further away earns nothing.
// Unparsable dates or times score zero under an explicit "unknown" policy.
func scoreTime(ride *domain.Ride, intent SearchIntent, prefs Preferences) (float64, int) {
	daysApart, err := DaysApart(ride.DepartureDate, intent.Date)
	if err != nil {
		return 0, TimeDiffUnknown
	}

	switch {
	case daysApart == 0:
		diff, err := MinutesApart(ride.DepartureTime, intent.Time)
		if err != nil {
			return 0, TimeDiffUnknown
		}
		return decayScore(float64(diff), prefs.MaxTimeDifferenceMin, timeWeight), diff
	case daysApart == 1:
		diff, err := MinutesApart(ride.DepartureTime, intent.Time)
		if err != nil {
			return nextDayTimeScore, TimeDiffUnknown
		}
		return nextDayTimeScore, diff
	default:
		diff, err := MinutesApart(ride.DepartureTime, intent.Time)
		if err != nil {
			return 0, TimeDiffUnknown
		}
		return 0, diff
	}
}

// decayScore maps a value in [0, max] linearly onto [weight, 0], clamping
// to 0 at or beyond max.
func decayScore(value, max, weight float64) float64 {
	if max <= 0 {
		return 0
	}
	score := weight * (1 - value/max)
	if score < 0 {
		return 0
	}
	return score
}

// effectiveRating returns the driver's aggregate rating, or the documented
// default for drivers with no ratings yet.
func effectiveRating(ride *domain.Ride) float64 {
	if !ride.HasRating() {
		return defaultDriverRating
	}
	return ride.DriverRating
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
