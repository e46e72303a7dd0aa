package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidDriverName),
		errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDropoffLocation),
		errors.Is(err, service.ErrInvalidDepartureDate),
		errors.Is(err, service.ErrInvalidDepartureTime),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStars):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrRideNotActive),
		errors.Is(err, service.ErrRideAlreadyCancelled),
		errors.Is(err, service.ErrNoSeatsAvailable),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrBookingAlreadyClosed):
		return http.StatusConflict

	// Lock contention - retryable
	case errors.Is(err, service.ErrRideBusy):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
