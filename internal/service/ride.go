package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"carona/internal/domain"
	"carona/internal/repository"
)

// seatUpdateAttempts bounds the optimistic-concurrency retry loop for
// seat-set mutations. Exhaustion surfaces ErrConcurrentUpdate.
const seatUpdateAttempts = 3

// RideService owns the lifecycle of a ride: creation, seat requests and
// the driver's accept/reject decisions. Every mutation is a single
// conditional update against the store, retried on version conflicts, so
// concurrent requests can never oversubscribe a ride.
type RideService struct {
	rideRepo repository.RideRepository
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository) *RideService {
	return &RideService{rideRepo: rideRepo}
}

// CreateRideRequest contains the parameters for publishing a ride.
type CreateRideRequest struct {
	DriverID    string
	Vehicle     string
	Capacity    int
	Fare        float64
	Departure   time.Time
	Arrival     time.Time
	Origin      domain.Address
	Destination domain.Address
}

// CreateRide validates and persists a new ride in OPEN state with empty
// seat sets.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if err := validateCreateRide(req); err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:            uuid.New().String(),
		DriverID:      req.DriverID,
		Vehicle:       req.Vehicle,
		Capacity:      req.Capacity,
		Fare:          req.Fare,
		DepartureTime: req.Departure,
		ArrivalTime:   req.Arrival,
		Origin:        req.Origin,
		Destination:   req.Destination,
		Status:        domain.RideStatusOpen,
		Requesters:    []string{},
		Passengers:    []string{},
		CreatedAt:     time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}
	return ride, nil
}

func validateCreateRide(req CreateRideRequest) error {
	if req.DriverID == "" {
		return ErrInvalidDriverID
	}
	if req.Vehicle == "" {
		return ErrInvalidVehicle
	}
	if req.Capacity < 1 {
		return ErrInvalidCapacity
	}
	if req.Fare < 0 {
		return ErrInvalidFare
	}
	if !req.Departure.Before(req.Arrival) {
		return ErrInvalidSchedule
	}
	if !req.Origin.Complete() || !req.Destination.Complete() {
		return ErrIncompleteAddress
	}
	return nil
}

// RequestOutcome classifies a successful RequestSeat call.
type RequestOutcome string

const (
	// RequestAccepted means the rider now has a pending request.
	RequestAccepted RequestOutcome = "ACCEPTED"
	// RequestAlreadyPassenger means the rider already holds a confirmed
	// seat; the call is an idempotent success with no state change.
	RequestAlreadyPassenger RequestOutcome = "ALREADY_PASSENGER"
)

// RequestSeat registers a pending seat request for the rider.
//
// Classification order is a user-visible contract: a missing ride beats
// everything, a driver self-request beats capacity, and a full ride beats
// a duplicate request (re-requesting a ride that has since filled up
// reports "full", not "duplicate"). Pending requests count against
// capacity here, so displayed availability can never be oversubscribed
// by accepts alone.
func (s *RideService) RequestSeat(ctx context.Context, rideID, riderID string) (RequestOutcome, error) {
	if riderID == "" {
		return "", ErrInvalidRiderID
	}

	for attempt := 0; attempt < seatUpdateAttempts; attempt++ {
		ride, err := s.rideRepo.GetByID(ctx, rideID)
		if err != nil {
			return "", err
		}

		if riderID == ride.DriverID {
			return "", ErrOwnRideRequest
		}
		if ride.ListingSeatsLeft() <= 0 {
			return "", ErrRideFull
		}
		if ride.HasRequester(riderID) {
			return "", ErrDuplicateRequest
		}
		if ride.HasPassenger(riderID) {
			return RequestAlreadyPassenger, nil
		}

		requesters := append(append([]string{}, ride.Requesters...), riderID)
		err = s.rideRepo.UpdateSeats(ctx, ride.ID, requesters, ride.Passengers, ride.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return "", err
		}
		return RequestAccepted, nil
	}

	return "", ErrConcurrentUpdate
}

// RespondToRequest resolves a pending request: reject removes the rider
// from the requester set, accept moves the rider into the passenger set.
// Only the ride's driver may respond. Acceptance re-checks capacity
// against confirmed passengers only, since the accepted requester is
// leaving the reservation pool in the same write.
func (s *RideService) RespondToRequest(ctx context.Context, rideID, callerID, riderID string, accept bool) error {
	if riderID == "" {
		return ErrInvalidRiderID
	}

	for attempt := 0; attempt < seatUpdateAttempts; attempt++ {
		ride, err := s.rideRepo.GetByID(ctx, rideID)
		if err != nil {
			return err
		}

		if callerID != ride.DriverID {
			return ErrNotRideDriver
		}
		if !ride.HasRequester(riderID) {
			return ErrRequestNotFound
		}

		requesters := ride.WithoutRequester(riderID)
		passengers := ride.Passengers

		if accept {
			if ride.ConfirmedSeatsLeft() <= 0 {
				return ErrRideFull
			}
			// Unreachable while the sets stay disjoint; guards a
			// concurrent double-accept all the same.
			if ride.HasPassenger(riderID) {
				return ErrAlreadyConfirmed
			}
			passengers = append(append([]string{}, ride.Passengers...), riderID)
		}

		err = s.rideRepo.UpdateSeats(ctx, ride.ID, requesters, passengers, ride.Version)
		if errors.Is(err, repository.ErrVersionConflict) {
			continue
		}
		return err
	}

	return ErrConcurrentUpdate
}
