package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carona/internal/handler"
	"carona/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler   *handler.RideHandler
	UserHandler   *handler.UserHandler
	RatingHandler *handler.RatingHandler
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
	JWTSecret     string
	UploadsDir    string
	UploadsURL    string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	authed := middleware.RequireAuth(deps.JWTSecret)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded profile photos.
	router.Static(deps.UploadsURL, deps.UploadsDir)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("", deps.UserHandler.Register)
			users.GET("/me", authed, deps.UserHandler.Me)
			users.PATCH("/me", authed, deps.UserHandler.UpdateMe)
			users.POST("/me/photo", authed, deps.UserHandler.UploadPhoto)
		}

		// Ride routes. The feed and detail views are public.
		rides := v1.Group("/rides")
		{
			rides.POST("", authed, deps.RideHandler.CreateRide)
			rides.GET("", deps.RideHandler.ListRides)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/requests", authed, deps.RideHandler.RequestSeat)
			rides.POST("/:id/requests/:riderId/response", authed, deps.RideHandler.RespondToRequest)
		}

		// Rating routes.
		ratings := v1.Group("/ratings")
		{
			ratings.POST("", authed, deps.RatingHandler.Create)
		}
	}

	return router
}
