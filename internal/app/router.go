package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/handler"
	"carpool/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	SearchHandler  *handler.SearchHandler
	RideHandler    *handler.RideHandler
	BookingHandler *handler.BookingHandler
	DriverHandler  *handler.DriverHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Search route.
		v1.POST("/search", deps.SearchHandler.Search)

		// Ride routes.
		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.PostRide)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.POST("/:id/complete", deps.RideHandler.CompleteRide)
			rides.GET("/:id/bookings", deps.BookingHandler.GetByRide)
		}

		// Booking routes.
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.RequestBooking)
			bookings.GET("", deps.BookingHandler.GetByRider)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.POST("/:id/confirm", deps.BookingHandler.ConfirmBooking)
			bookings.POST("/:id/reject", deps.BookingHandler.RejectBooking)
			bookings.POST("/:id/cancel", deps.BookingHandler.CancelBooking)
		}

		// Driver and rating routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.GET("/:id/rating", deps.DriverHandler.GetRating)
			drivers.GET("/:id/ratings", deps.DriverHandler.GetRatings)
		}
		v1.POST("/ratings", deps.DriverHandler.SubmitRating)
	}

	return router
}
