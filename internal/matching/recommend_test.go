package matching

import (
	"fmt"
	"testing"

	"carpool/internal/domain"
)

func TestRecommend_SortsBestMatchFirst(t *testing.T) {
	perfect := testRide()
	perfect.ID = "ride-perfect"

	pricier := testRide()
	pricier.ID = "ride-pricier"
	pricier.PricePerSeat = 8

	offset := testRide()
	offset.ID = "ride-offset"
	offset.DepartureTime = "3:40 PM"

	matches := Recommend([]*domain.Ride{pricier, offset, perfect}, testIntent(), DefaultPreferences(), SortByMatch)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}

	wantOrder := []string{"ride-perfect", "ride-offset", "ride-pricier"}
	for i, want := range wantOrder {
		if matches[i].Ride.ID != want {
			t.Errorf("position %d: got %s, want %s", i, matches[i].Ride.ID, want)
		}
	}

	for i := 1; i < len(matches); i++ {
		if matches[i].Score.Total > matches[i-1].Score.Total {
			t.Errorf("matches not sorted by score: %v after %v", matches[i].Score.Total, matches[i-1].Score.Total)
		}
	}
}

func TestRecommend_EqualScoresBreakTiesByPriceThenTime(t *testing.T) {
	// Both at or over budget, so the price component is 0 for each and the
	// totals tie; the cheaper seat should still list first.
	pricier := testRide()
	pricier.ID = "ride-pricier"
	pricier.PricePerSeat = 15

	cheaper := testRide()
	cheaper.ID = "ride-cheaper"
	cheaper.PricePerSeat = 12

	matches := Recommend([]*domain.Ride{pricier, cheaper}, testIntent(), DefaultPreferences(), SortByMatch)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if !almostEqual(matches[0].Score.Total, matches[1].Score.Total) {
		t.Fatalf("totals differ (%v vs %v), tie scenario broken", matches[0].Score.Total, matches[1].Score.Total)
	}
	if matches[0].Ride.ID != "ride-cheaper" {
		t.Errorf("tied scores: got %s first, want ride-cheaper", matches[0].Ride.ID)
	}

	// Same price and both departure gaps beyond the window, so price and
	// time components are 0 for each; the smaller gap should list first.
	later := testRide()
	later.ID = "ride-later"
	later.PricePerSeat = 10
	later.DepartureTime = "4:30 PM"

	sooner := testRide()
	sooner.ID = "ride-sooner"
	sooner.PricePerSeat = 10
	sooner.DepartureTime = "4:10 PM"

	matches = Recommend([]*domain.Ride{later, sooner}, testIntent(), DefaultPreferences(), SortByMatch)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if !almostEqual(matches[0].Score.Total, matches[1].Score.Total) {
		t.Fatalf("totals differ (%v vs %v), tie scenario broken", matches[0].Score.Total, matches[1].Score.Total)
	}
	if matches[0].Ride.ID != "ride-sooner" {
		t.Errorf("tied scores and prices: got %s first, want ride-sooner", matches[0].Ride.ID)
	}
}

func TestRecommend_DropsCandidatesBelowThreshold(t *testing.T) {
	good := testRide()
	good.ID = "ride-good"

	// Far away, days out, at budget: only the default rating's 12 points.
	bad := testRide()
	bad.ID = "ride-bad"
	bad.PickupLat += 0.1
	bad.DropoffLat += 0.1
	bad.DepartureDate = "2025-06-05"
	bad.PricePerSeat = 10
	bad.DriverRating = 0
	bad.RatingCount = 0

	matches := Recommend([]*domain.Ride{good, bad}, testIntent(), DefaultPreferences(), SortByMatch)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Ride.ID != "ride-good" {
		t.Errorf("surviving match = %s, want ride-good", matches[0].Ride.ID)
	}
}

func TestRecommend_ThresholdBoundary(t *testing.T) {
	// Over budget, unrated: 20+20+30+0+12 = 82 total.
	ride := testRide()
	ride.PricePerSeat = 10
	ride.DriverRating = 0
	ride.RatingCount = 0

	prefs := DefaultPreferences()

	// A score equal to the threshold survives.
	prefs.MinMatchScore = 82
	if got := Recommend([]*domain.Ride{ride}, testIntent(), prefs, SortByMatch); len(got) != 1 {
		t.Errorf("score at threshold excluded, want included")
	}

	// Just above, it is dropped.
	prefs.MinMatchScore = 82.1
	if got := Recommend([]*domain.Ride{ride}, testIntent(), prefs, SortByMatch); len(got) != 0 {
		t.Errorf("score below threshold included, want excluded")
	}
}

func TestRecommend_SortByPrice(t *testing.T) {
	prices := []float64{5, 2, 8}
	rides := make([]*domain.Ride, len(prices))
	for i, p := range prices {
		r := testRide()
		r.ID = fmt.Sprintf("ride-%d", i)
		r.PricePerSeat = p
		rides[i] = r
	}

	matches := Recommend(rides, testIntent(), DefaultPreferences(), SortByPrice)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	wantPrices := []float64{2, 5, 8}
	for i, want := range wantPrices {
		if matches[i].Ride.PricePerSeat != want {
			t.Errorf("position %d: price %v, want %v", i, matches[i].Ride.PricePerSeat, want)
		}
	}
}

func TestRecommend_SortByTimeDifference(t *testing.T) {
	times := []string{"3:45 PM", "3:00 PM", "3:30 PM"}
	rides := make([]*domain.Ride, len(times))
	for i, tm := range times {
		r := testRide()
		r.DepartureTime = tm
		rides[i] = r
	}

	matches := Recommend(rides, testIntent(), DefaultPreferences(), SortByTime)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	wantDiffs := []int{0, 30, 45}
	for i, want := range wantDiffs {
		if matches[i].Score.TimeDiffMin != want {
			t.Errorf("position %d: time diff %d, want %d", i, matches[i].Score.TimeDiffMin, want)
		}
	}
}

func TestRecommend_UnknownTimeSortsLast(t *testing.T) {
	known := testRide()
	known.ID = "ride-known"
	known.DepartureTime = "3:45 PM"

	unknown := testRide()
	unknown.ID = "ride-unknown"
	unknown.DepartureTime = "whenever"

	matches := Recommend([]*domain.Ride{unknown, known}, testIntent(), DefaultPreferences(), SortByTime)

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Ride.ID != "ride-known" || matches[1].Ride.ID != "ride-unknown" {
		t.Errorf("unknown departure time did not sort last: [%s, %s]", matches[0].Ride.ID, matches[1].Ride.ID)
	}
}

func TestRecommend_FiltersLowRatedDrivers(t *testing.T) {
	lowRated := testRide()
	lowRated.ID = "ride-low"
	lowRated.DriverRating = 2.0
	lowRated.RatingCount = 5

	unrated := testRide()
	unrated.ID = "ride-unrated"
	unrated.DriverRating = 0
	unrated.RatingCount = 0

	matches := Recommend([]*domain.Ride{lowRated, unrated}, testIntent(), DefaultPreferences(), SortByMatch)

	// The unrated driver passes on the 4.0 default; the 2-star driver is out.
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Ride.ID != "ride-unrated" {
		t.Errorf("surviving match = %s, want ride-unrated", matches[0].Ride.ID)
	}
}

func TestRecommend_PercentageTracksTotal(t *testing.T) {
	ride := testRide()
	ride.PricePerSeat = 2 // price score 12, total 97

	matches := Recommend([]*domain.Ride{ride}, testIntent(), DefaultPreferences(), SortByMatch)

	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Percentage != 97 {
		t.Errorf("percentage = %d, want 97", matches[0].Percentage)
	}
}

func TestRecommend_EmptyPoolYieldsEmptyList(t *testing.T) {
	matches := Recommend(nil, testIntent(), DefaultPreferences(), SortByMatch)
	if len(matches) != 0 {
		t.Errorf("got %d matches from empty pool, want 0", len(matches))
	}
}

func TestRecommend_EndToEndScenario(t *testing.T) {
	// Rider in Manama wants to travel north on 2025-06-01 at 3:00 PM.
	intent := SearchIntent{
		PickupLat:  26.0667,
		PickupLng:  50.5577,
		DropoffLat: 26.2285,
		DropoffLng: 50.5860,
		Date:       "2025-06-01",
		Time:       "3:00 PM",
	}

	exact := &domain.Ride{
		ID:            "ride-exact",
		DriverRating:  5.0,
		RatingCount:   8,
		PickupLat:     26.0667,
		PickupLng:     50.5577,
		DropoffLat:    26.2285,
		DropoffLng:    50.5860,
		DepartureDate: "2025-06-01",
		DepartureTime: "3:00 PM",
		PricePerSeat:  2,
	}

	// Roughly 11 km off on both ends, departing the next morning.
	far := &domain.Ride{
		ID:            "ride-far",
		PickupLat:     26.1667,
		PickupLng:     50.5577,
		DropoffLat:    26.3285,
		DropoffLng:    50.5860,
		DepartureDate: "2025-06-02",
		DepartureTime: "9:00 AM",
		PricePerSeat:  8,
	}

	matches := Recommend([]*domain.Ride{far, exact}, intent, DefaultPreferences(), SortByMatch)

	// The far ride scores 0+0+5+3+12 = 20, under the default threshold.
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	m := matches[0]
	if m.Ride.ID != "ride-exact" {
		t.Fatalf("best match = %s, want ride-exact", m.Ride.ID)
	}
	// 20+20+30+12+15 = 97.
	if !almostEqual(m.Score.Total, 97) {
		t.Errorf("total = %v, want 97", m.Score.Total)
	}
	if m.Percentage != 97 {
		t.Errorf("percentage = %d, want 97", m.Percentage)
	}
}
