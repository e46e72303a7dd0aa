package matching

import (
	"math"
	"sort"

	"carpool/internal/domain"
)

// SortOrder selects the ordering of recommendation results.
type SortOrder string

const (
	// SortByMatch orders by total score, best match first. Default.
	SortByMatch SortOrder = "match"

	// SortByPrice orders by price per seat, cheapest first.
	SortByPrice SortOrder = "price"

	// SortByTime orders by departure-time gap, closest first. Rides whose
	// departure time could not be parsed sort last.
	SortByTime SortOrder = "time"
)

// Match pairs a candidate ride with its score against a search intent.
type Match struct {
	Ride  *domain.Ride `json:"ride"`
	Score Score        `json:"score"`

	// Percentage is the total score expressed as an integer 0-100 for
	// display; the five component caps sum to 100, so the total already
	// reads as a percentage.
	Percentage int `json:"percentage"`
}

// Recommend scores every candidate against the intent, drops candidates
// under the minimum score or by drivers rated under the minimum rating, and
// returns the survivors ordered by the requested sort. It never mutates its
// inputs and is safe for concurrent callers.
func Recommend(candidates []*domain.Ride, intent SearchIntent, prefs Preferences, order SortOrder) []Match {
	matches := make([]Match, 0, len(candidates))

	for _, ride := range candidates {
		if effectiveRating(ride) < prefs.MinDriverRating {
			continue
		}

		score := ScoreRide(ride, intent, prefs)
		if score.Total < prefs.MinMatchScore {
			continue
		}

		matches = append(matches, Match{
			Ride:       ride,
			Score:      score,
			Percentage: int(math.Round(score.Total)),
		})
	}

	sortMatches(matches, order)
	return matches
}

func sortMatches(matches []Match, order SortOrder) {
	switch order {
	case SortByPrice:
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Ride.PricePerSeat < matches[j].Ride.PricePerSeat
		})
	case SortByTime:
		sort.Slice(matches, func(i, j int) bool {
			return timeSortKey(matches[i]) < timeSortKey(matches[j])
		})
	default:
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].Score.Total != matches[j].Score.Total {
				return matches[i].Score.Total > matches[j].Score.Total
			}
			// Equal scores: cheaper first, then the smaller departure gap.
			if matches[i].Ride.PricePerSeat != matches[j].Ride.PricePerSeat {
				return matches[i].Ride.PricePerSeat < matches[j].Ride.PricePerSeat
			}
			return timeSortKey(matches[i]) < timeSortKey(matches[j])
		})
	}
}

// timeSortKey orders unknown time gaps after every known gap.
func timeSortKey(m Match) int {
	if m.Score.TimeDiffMin == TimeDiffUnknown {
		return math.MaxInt
	}
	return m.Score.TimeDiffMin
}
