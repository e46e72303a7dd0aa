package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/matching"
	"carpool/internal/service"
)

// SearchHandler handles HTTP requests for ride recommendations.
type SearchHandler struct {
	searchService *service.SearchService
	defaultPrefs  matching.Preferences
}

// NewSearchHandler creates a new SearchHandler. defaultPrefs supplies the
// thresholds used when the request omits an override.
func NewSearchHandler(searchService *service.SearchService, defaultPrefs matching.Preferences) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		defaultPrefs:  defaultPrefs,
	}
}

// SearchRequest is the HTTP request body for a ride search.
type SearchRequest struct {
	PickupLat  float64 `json:"pickup_lat"`
	PickupLng  float64 `json:"pickup_lng"`
	DropoffLat float64 `json:"dropoff_lat"`
	DropoffLng float64 `json:"dropoff_lng"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Time       string  `json:"time"` // "3:00 PM" or "15:00"
	SortBy     string  `json:"sort_by,omitempty"` // match (default), price, time

	// Optional preference overrides; nil fields keep the configured defaults.
	MaxPickupDistanceKm  *float64 `json:"max_pickup_distance_km,omitempty"`
	MaxDropoffDistanceKm *float64 `json:"max_dropoff_distance_km,omitempty"`
	MaxTimeDifferenceMin *float64 `json:"max_time_difference_min,omitempty"`
	MaxPriceBudget       *float64 `json:"max_price_budget,omitempty"`
	MinDriverRating      *float64 `json:"min_driver_rating,omitempty"`
	MinMatchScore        *float64 `json:"min_match_score,omitempty"`
}

// MatchResponse is one recommended ride in a search response.
type MatchResponse struct {
	RideID         string         `json:"ride_id"`
	DriverID       string         `json:"driver_id"`
	DriverName     string         `json:"driver_name"`
	PickupLabel    string         `json:"pickup_label"`
	DropoffLabel   string         `json:"dropoff_label"`
	DepartureDate  string         `json:"departure_date"`
	DepartureTime  string         `json:"departure_time"`
	PricePerSeat   float64        `json:"price_per_seat"`
	AvailableSeats int            `json:"available_seats"`
	Score          matching.Score `json:"score"`
	Percentage     int            `json:"percentage"`
	Quality        matching.Quality `json:"quality"`
	PickupDistance string         `json:"pickup_distance"`
	TimeDifference string         `json:"time_difference"`
	Reasons        []string       `json:"reasons"`
}

// SearchResponse is the HTTP response for a ride search.
type SearchResponse struct {
	Matches []MatchResponse `json:"matches"`
	Count   int             `json:"count"`
}

// Search handles POST /v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	intent := matching.SearchIntent{
		PickupLat:  req.PickupLat,
		PickupLng:  req.PickupLng,
		DropoffLat: req.DropoffLat,
		DropoffLng: req.DropoffLng,
		Date:       req.Date,
		Time:       req.Time,
	}

	prefs := h.mergePrefs(req)
	order := parseSortOrder(req.SortBy)

	matches, err := h.searchService.Search(c.Request.Context(), intent, prefs, order)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := SearchResponse{
		Matches: make([]MatchResponse, 0, len(matches)),
		Count:   len(matches),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, MatchResponse{
			RideID:         m.Ride.ID,
			DriverID:       m.Ride.DriverID,
			DriverName:     m.Ride.DriverName,
			PickupLabel:    m.Ride.PickupLabel,
			DropoffLabel:   m.Ride.DropoffLabel,
			DepartureDate:  m.Ride.DepartureDate,
			DepartureTime:  m.Ride.DepartureTime,
			PricePerSeat:   m.Ride.PricePerSeat,
			AvailableSeats: m.Ride.AvailableSeats,
			Score:          m.Score,
			Percentage:     m.Percentage,
			Quality:        matching.QualityFor(m.Percentage),
			PickupDistance: matching.FormatDistance(m.Score.PickupDistanceKm),
			TimeDifference: matching.FormatTimeDiff(m.Score.TimeDiffMin),
			Reasons:        matching.Reasons(m.Score),
		})
	}

	respondJSON(c, http.StatusOK, resp)
}

// mergePrefs overlays request overrides on the configured defaults.
func (h *SearchHandler) mergePrefs(req SearchRequest) matching.Preferences {
	prefs := h.defaultPrefs
	if req.MaxPickupDistanceKm != nil {
		prefs.MaxPickupDistanceKm = *req.MaxPickupDistanceKm
	}
	if req.MaxDropoffDistanceKm != nil {
		prefs.MaxDropoffDistanceKm = *req.MaxDropoffDistanceKm
	}
	if req.MaxTimeDifferenceMin != nil {
		prefs.MaxTimeDifferenceMin = *req.MaxTimeDifferenceMin
	}
	if req.MaxPriceBudget != nil {
		prefs.MaxPriceBudget = *req.MaxPriceBudget
	}
	if req.MinDriverRating != nil {
		prefs.MinDriverRating = *req.MinDriverRating
	}
	if req.MinMatchScore != nil {
		prefs.MinMatchScore = *req.MinMatchScore
	}
	return prefs
}

func parseSortOrder(s string) matching.SortOrder {
	switch s {
	case "price":
		return matching.SortByPrice
	case "time":
		return matching.SortByTime
	default:
		return matching.SortByMatch
	}
}
