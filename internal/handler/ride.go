package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// PostRideRequest is the HTTP request body for posting a ride.
type PostRideRequest struct {
	DriverID      string  `json:"driver_id"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLng     float64 `json:"pickup_lng"`
	PickupLabel   string  `json:"pickup_label"`
	DropoffLat    float64 `json:"dropoff_lat"`
	DropoffLng    float64 `json:"dropoff_lng"`
	DropoffLabel  string  `json:"dropoff_label"`
	DepartureDate string  `json:"departure_date"` // YYYY-MM-DD
	DepartureTime string  `json:"departure_time"` // "3:00 PM" or "15:00"
	PricePerSeat  float64 `json:"price_per_seat"`
	TotalSeats    int     `json:"total_seats"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	DriverID       string  `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	DriverPhone    string  `json:"driver_phone,omitempty"`
	DriverRating   float64 `json:"driver_rating"`
	RatingCount    int     `json:"rating_count"`
	PickupLat      float64 `json:"pickup_lat"`
	PickupLng      float64 `json:"pickup_lng"`
	PickupLabel    string  `json:"pickup_label"`
	DropoffLat     float64 `json:"dropoff_lat"`
	DropoffLng     float64 `json:"dropoff_lng"`
	DropoffLabel   string  `json:"dropoff_label"`
	DepartureDate  string  `json:"departure_date"`
	DepartureTime  string  `json:"departure_time"`
	PricePerSeat   float64 `json:"price_per_seat"`
	TotalSeats     int     `json:"total_seats"`
	AvailableSeats int     `json:"available_seats"`
	Status         string  `json:"status"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:             ride.ID,
		DriverID:       ride.DriverID,
		DriverName:     ride.DriverName,
		DriverPhone:    ride.DriverPhone,
		DriverRating:   ride.DriverRating,
		RatingCount:    ride.RatingCount,
		PickupLat:      ride.PickupLat,
		PickupLng:      ride.PickupLng,
		PickupLabel:    ride.PickupLabel,
		DropoffLat:     ride.DropoffLat,
		DropoffLng:     ride.DropoffLng,
		DropoffLabel:   ride.DropoffLabel,
		DepartureDate:  ride.DepartureDate,
		DepartureTime:  ride.DepartureTime,
		PricePerSeat:   ride.PricePerSeat,
		TotalSeats:     ride.TotalSeats,
		AvailableSeats: ride.AvailableSeats,
		Status:         string(ride.Status),
	}
}

// PostRide handles POST /v1/rides
func (h *RideHandler) PostRide(c *gin.Context) {
	var req PostRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.PostRide(c.Request.Context(), service.PostRideInput{
		DriverID:      req.DriverID,
		PickupLat:     req.PickupLat,
		PickupLng:     req.PickupLng,
		PickupLabel:   req.PickupLabel,
		DropoffLat:    req.DropoffLat,
		DropoffLng:    req.DropoffLng,
		DropoffLabel:  req.DropoffLabel,
		DepartureDate: req.DepartureDate,
		DepartureTime: req.DepartureTime,
		PricePerSeat:  req.PricePerSeat,
		TotalSeats:    req.TotalSeats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetAll handles GET /v1/rides
func (h *RideHandler) GetAll(c *gin.Context) {
	rides, err := h.rideService.GetAllRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		resp = append(resp, toRideResponse(ride))
	}
	respondJSON(c, http.StatusOK, resp)
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	ride, err := h.rideService.CancelRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	ride, err := h.rideService.CompleteRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
