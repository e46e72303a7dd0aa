package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/service"
)

// DriverHandler handles HTTP requests for drivers and ratings.
type DriverHandler struct {
	driverService *service.DriverService
	ratingService *service.RatingService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, ratingService *service.RatingService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		ratingService: ratingService,
	}
}

// RegisterDriverRequest is the HTTP request body for registering a driver.
type RegisterDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// DriverResponse is the HTTP representation of a driver profile.
type DriverResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// SubmitRatingRequest is the HTTP request body for submitting a rating.
type SubmitRatingRequest struct {
	DriverID string  `json:"driver_id"`
	RiderID  string  `json:"rider_id"`
	RideID   string  `json:"ride_id,omitempty"`
	Stars    float64 `json:"stars"`
	Comment  string  `json:"comment,omitempty"`
}

// DriverRatingResponse is the HTTP response for a driver's aggregate rating.
type DriverRatingResponse struct {
	DriverID string  `json:"driver_id"`
	Rating   float64 `json:"rating"`
	Count    int     `json:"count"`
}

// RatingResponse is the HTTP representation of a single submitted rating.
type RatingResponse struct {
	ID      string  `json:"id"`
	RiderID string  `json:"rider_id"`
	RideID  string  `json:"ride_id,omitempty"`
	Stars   float64 `json:"stars"`
	Comment string  `json:"comment,omitempty"`
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, DriverResponse{
		ID:          driver.ID,
		Name:        driver.Name,
		Phone:       driver.Phone,
		Rating:      driver.Rating,
		RatingCount: driver.RatingCount,
	})
}

// GetRating handles GET /v1/drivers/:id/rating
func (h *DriverHandler) GetRating(c *gin.Context) {
	driverID := c.Param("id")

	rating, count, err := h.ratingService.GetDriverRating(c.Request.Context(), driverID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DriverRatingResponse{
		DriverID: driverID,
		Rating:   rating,
		Count:    count,
	})
}

// GetRatings handles GET /v1/drivers/:id/ratings, the individual reviews
// behind the aggregate.
func (h *DriverHandler) GetRatings(c *gin.Context) {
	ratings, err := h.ratingService.GetDriverRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RatingResponse, 0, len(ratings))
	for _, r := range ratings {
		resp = append(resp, RatingResponse{
			ID:      r.ID,
			RiderID: r.RiderID,
			RideID:  r.RideID,
			Stars:   r.Stars,
			Comment: r.Comment,
		})
	}
	respondJSON(c, http.StatusOK, resp)
}

// SubmitRating handles POST /v1/ratings
func (h *DriverHandler) SubmitRating(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rating, err := h.ratingService.SubmitRating(c.Request.Context(), service.SubmitRatingInput{
		DriverID: req.DriverID,
		RiderID:  req.RiderID,
		RideID:   req.RideID,
		Stars:    req.Stars,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, gin.H{
		"id":        rating.ID,
		"driver_id": rating.DriverID,
		"stars":     rating.Stars,
	})
}
