package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carona/internal/domain"
	"carona/internal/repository"
)

// RatingService records driver reviews. Only confirmed passengers of a
// ride may rate its driver; the ride workflow itself never writes here.
type RatingService struct {
	ratingRepo repository.RatingRepository
	rideRepo   repository.RideRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, rideRepo repository.RideRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo, rideRepo: rideRepo}
}

// CreateRatingRequest contains the parameters for recording a rating.
type CreateRatingRequest struct {
	RideID   string
	AuthorID string
	Score    int
	Comment  string
}

// CreateRating validates and persists a rating against the ride's driver.
func (s *RatingService) CreateRating(ctx context.Context, req CreateRatingRequest) (*domain.Rating, error) {
	if req.Score < 1 || req.Score > 5 {
		return nil, ErrInvalidScore
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if !ride.HasPassenger(req.AuthorID) {
		return nil, ErrNotPassenger
	}

	rating := &domain.Rating{
		ID:        uuid.New().String(),
		RideID:    ride.ID,
		AuthorID:  req.AuthorID,
		DriverID:  ride.DriverID,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}
