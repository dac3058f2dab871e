package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"carona/internal/domain"
	"carona/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

const rideColumns = `id, driver_id, vehicle, capacity, fare, departure_time, arrival_time,
	origin_place, origin_postal, origin_street, origin_number, origin_district, origin_city, origin_state,
	dest_place, dest_postal, dest_street, dest_number, dest_district, dest_city, dest_state,
	status, requesters, passengers, version, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.DriverID,
		ride.Vehicle,
		ride.Capacity,
		ride.Fare,
		ride.DepartureTime,
		ride.ArrivalTime,
		ride.Origin.Place,
		ride.Origin.PostalCode,
		ride.Origin.Street,
		ride.Origin.Number,
		ride.Origin.Neighborhood,
		ride.Origin.City,
		ride.Origin.State,
		ride.Destination.Place,
		ride.Destination.PostalCode,
		ride.Destination.Street,
		ride.Destination.Number,
		ride.Destination.Neighborhood,
		ride.Destination.City,
		ride.Destination.State,
		ride.Status,
		pq.Array(ride.Requesters),
		pq.Array(ride.Passengers),
		ride.Version,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetOpen retrieves all rides stored with OPEN status.
func (r *RideRepository) GetOpen(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE status = $1 ORDER BY created_at DESC LIMIT 100`

	rows, err := r.q.QueryContext(ctx, query, domain.RideStatusOpen)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// UpdateSeats replaces the requester and passenger sets under an
// optimistic version guard. Zero rows affected means either the ride is
// gone or another writer bumped the version first; the two cases are
// told apart with a follow-up existence check.
func (r *RideRepository) UpdateSeats(ctx context.Context, id string, requesters, passengers []string, expectedVersion int64) error {
	query := `
		UPDATE rides
		SET requesters = $1, passengers = $2, version = version + 1
		WHERE id = $3 AND version = $4
	`

	result, err := r.q.ExecContext(ctx, query, pq.Array(requesters), pq.Array(passengers), id, expectedVersion)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrVersionConflict
}

// scanner abstracts *sql.Row and *sql.Rows for scanRide.
type scanner interface {
	Scan(dest ...any) error
}

func scanRide(s scanner) (*domain.Ride, error) {
	var ride domain.Ride
	var requesters, passengers pq.StringArray

	err := s.Scan(
		&ride.ID,
		&ride.DriverID,
		&ride.Vehicle,
		&ride.Capacity,
		&ride.Fare,
		&ride.DepartureTime,
		&ride.ArrivalTime,
		&ride.Origin.Place,
		&ride.Origin.PostalCode,
		&ride.Origin.Street,
		&ride.Origin.Number,
		&ride.Origin.Neighborhood,
		&ride.Origin.City,
		&ride.Origin.State,
		&ride.Destination.Place,
		&ride.Destination.PostalCode,
		&ride.Destination.Street,
		&ride.Destination.Number,
		&ride.Destination.Neighborhood,
		&ride.Destination.City,
		&ride.Destination.State,
		&ride.Status,
		&requesters,
		&passengers,
		&ride.Version,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ride.Requesters = []string(requesters)
	ride.Passengers = []string(passengers)
	return &ride, nil
}
