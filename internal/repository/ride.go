package repository

import (
	"context"

	"carona/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID, including its current version.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetOpen retrieves all rides stored with OPEN status.
	GetOpen(ctx context.Context) ([]*domain.Ride, error)

	// UpdateSeats replaces the requester and passenger sets of a ride,
	// but only if the stored version still equals expectedVersion.
	// Returns ErrVersionConflict when a concurrent mutation won the race
	// and ErrNotFound when the ride does not exist.
	UpdateSeats(ctx context.Context, id string, requesters, passengers []string, expectedVersion int64) error
}
