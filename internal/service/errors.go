package service

import "errors"

var (
	// ErrInvalidDriverID is returned when the driver identity is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRiderID is returned when the rider identity is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidVehicle is returned when the vehicle descriptor is empty.
	ErrInvalidVehicle = errors.New("invalid vehicle")

	// ErrInvalidCapacity is returned when seat capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrInvalidFare is returned when the fare is negative.
	ErrInvalidFare = errors.New("fare cannot be negative")

	// ErrInvalidSchedule is returned when departure is not before arrival.
	ErrInvalidSchedule = errors.New("departure must be before arrival")

	// ErrIncompleteAddress is returned when an address is missing sub-fields.
	ErrIncompleteAddress = errors.New("incomplete address")

	// ErrOwnRideRequest is returned when a driver requests a seat on their own ride.
	ErrOwnRideRequest = errors.New("driver cannot request own ride")

	// ErrRideFull is returned when no seat is available for the operation.
	ErrRideFull = errors.New("ride full")

	// ErrDuplicateRequest is returned when the rider already has a pending request.
	ErrDuplicateRequest = errors.New("duplicate request")

	// ErrRequestNotFound is returned when responding to a request that does not exist.
	ErrRequestNotFound = errors.New("no pending request for rider")

	// ErrNotRideDriver is returned when a caller responds to requests on a ride they do not own.
	ErrNotRideDriver = errors.New("caller is not the ride driver")

	// ErrAlreadyConfirmed is returned when accepting a rider who already holds a seat.
	ErrAlreadyConfirmed = errors.New("rider already confirmed")

	// ErrConcurrentUpdate is returned when a seat mutation keeps losing the
	// version race after the bounded retry count. Safe to retry.
	ErrConcurrentUpdate = errors.New("ride modified concurrently, retry")

	// ErrInvalidScore is returned when a rating score is outside [1,5].
	ErrInvalidScore = errors.New("score must be between 1 and 5")

	// ErrNotPassenger is returned when a rating author was not a passenger of the ride.
	ErrNotPassenger = errors.New("author is not a passenger of this ride")

	// ErrInvalidBirthDate is returned when a birth date is in the future.
	ErrInvalidBirthDate = errors.New("birth date must be in the past")

	// ErrInvalidPhoto is returned when an uploaded photo is not a valid base64 data URI.
	ErrInvalidPhoto = errors.New("photo must be a base64 data URI")
)
