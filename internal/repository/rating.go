package repository

import (
	"context"

	"carona/internal/domain"
)

// RatingRepository defines the persistence operations for driver ratings.
// The ride workflow only ever reads the aggregate; writes happen through
// the rating endpoint alone.
type RatingRepository interface {
	// Create persists a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// MeanForDriver returns the mean score over all ratings recorded
	// against the driver and how many ratings exist. A driver with no
	// ratings yields (0, 0) with no error.
	MeanForDriver(ctx context.Context, driverID string) (float64, int, error)
}
