package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/service"
)

// BookingHandler handles HTTP requests for seat bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RequestBookingRequest is the HTTP request body for requesting a booking.
type RequestBookingRequest struct {
	RideID    string `json:"ride_id"`
	RiderID   string `json:"rider_id"`
	RiderName string `json:"rider_name,omitempty"`
	Seats     int    `json:"seats"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID        string `json:"id"`
	RideID    string `json:"ride_id"`
	RiderID   string `json:"rider_id"`
	RiderName string `json:"rider_name,omitempty"`
	Seats     int    `json:"seats"`
	Status    string `json:"status"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		RideID:    b.RideID,
		RiderID:   b.RiderID,
		RiderName: b.RiderName,
		Seats:     b.Seats,
		Status:    string(b.Status),
	}
}

// RequestBooking handles POST /v1/bookings
func (h *BookingHandler) RequestBooking(c *gin.Context) {
	var req RequestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.RequestBooking(c.Request.Context(), req.RideID, req.RiderID, req.RiderName, req.Seats)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// GetByRider handles GET /v1/bookings?rider_id=...
func (h *BookingHandler) GetByRider(c *gin.Context) {
	riderID := c.Query("rider_id")

	bookings, err := h.bookingService.GetBookingsForRider(c.Request.Context(), riderID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	respondJSON(c, http.StatusOK, resp)
}

// GetByRide handles GET /v1/rides/:id/bookings, the driver's view of who
// has requested seats on their ride.
func (h *BookingHandler) GetByRide(c *gin.Context) {
	bookings, err := h.bookingService.GetBookingsForRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}
	respondJSON(c, http.StatusOK, resp)
}

// ConfirmBooking handles POST /v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// RejectBooking handles POST /v1/bookings/:id/reject
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	booking, err := h.bookingService.RejectBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles POST /v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}
