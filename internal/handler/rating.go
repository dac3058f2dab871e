package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carona/internal/middleware"
	"carona/internal/service"
)

// RatingHandler handles HTTP requests for driver ratings.
type RatingHandler struct {
	ratingService *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// CreateRatingRequest is the HTTP request body for rating a driver.
type CreateRatingRequest struct {
	RideID  string `json:"ride_id" binding:"required"`
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// RatingResponse is the HTTP response for a created rating.
type RatingResponse struct {
	ID        string    `json:"id"`
	RideID    string    `json:"ride_id"`
	AuthorID  string    `json:"author_id"`
	DriverID  string    `json:"driver_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Create handles POST /v1/ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rating, err := h.ratingService.CreateRating(c.Request.Context(), service.CreateRatingRequest{
		RideID:   req.RideID,
		AuthorID: middleware.UserID(c),
		Score:    req.Score,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RatingResponse{
		ID:        rating.ID,
		RideID:    rating.RideID,
		AuthorID:  rating.AuthorID,
		DriverID:  rating.DriverID,
		Score:     rating.Score,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	})
}
