package tests

import (
	"context"
	"testing"

	"carona/internal/repository"
	"carona/internal/service"
)

func TestRespond_UnknownRide_NotFound(t *testing.T) {
	rideService := service.NewRideService(NewMockRideRepository())

	err := rideService.RespondToRequest(context.Background(), "missing", "driver-1", "rider-a", true)
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRespond_CallerIsNotDriver_Forbidden(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-a"}, nil))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "rider-b", "rider-a", true)
	if err != service.ErrNotRideDriver {
		t.Errorf("expected ErrNotRideDriver, got %v", err)
	}

	// Ownership beats request existence: a stranger probing for a
	// nonexistent request still sees forbidden.
	err = rideService.RespondToRequest(context.Background(), "ride-1", "rider-b", "rider-x", true)
	if err != service.ErrNotRideDriver {
		t.Errorf("expected ErrNotRideDriver, got %v", err)
	}
}

func TestRespond_NoPendingRequest_NotFound(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, nil, nil))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-a", true)
	if err != service.ErrRequestNotFound {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestRespond_Reject_RemovesRequester(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-a", "rider-b"}, nil))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-a", false)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	stored := rideRepo.GetRide("ride-1")
	if stored.HasRequester("rider-a") {
		t.Error("rejected rider still in requesters")
	}
	if !stored.HasRequester("rider-b") {
		t.Error("unrelated requester was removed")
	}
	if len(stored.Passengers) != 0 {
		t.Error("reject must not confirm anyone")
	}
}

func TestRespond_Accept_MovesRequesterToPassengers(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-a"}, nil))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-a", true)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	stored := rideRepo.GetRide("ride-1")
	if stored.HasRequester("rider-a") {
		t.Error("accepted rider still in requesters")
	}
	if !stored.HasPassenger("rider-a") {
		t.Error("accepted rider missing from passengers")
	}
}

func TestRespond_Accept_FullRide_Conflict(t *testing.T) {
	// Every seat is confirmed; the lingering request cannot be accepted.
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 1, []string{"rider-b"}, []string{"rider-a"}))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-b", true)
	if err != service.ErrRideFull {
		t.Errorf("expected ErrRideFull, got %v", err)
	}

	stored := rideRepo.GetRide("ride-1")
	if len(stored.Passengers) > stored.Capacity {
		t.Error("capacity invariant violated by accept")
	}
	if !stored.HasRequester("rider-b") {
		t.Error("failed accept must not drop the pending request")
	}
}

func TestRespond_Reject_FullRide_StillSucceeds(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 1, []string{"rider-b"}, []string{"rider-a"}))
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-b", false)
	if err != nil {
		t.Errorf("reject must succeed regardless of capacity, got %v", err)
	}
}

func TestRespond_RetriesOnVersionConflict(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-a"}, nil))
	rideRepo.UpdateSeatsErrors = []error{repository.ErrVersionConflict}
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-a", true)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if rideRepo.UpdateSeatsCallCount != 2 {
		t.Errorf("expected 2 update attempts, got %d", rideRepo.UpdateSeatsCallCount)
	}
}

func TestRespond_ConflictRetriesExhaust(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-a"}, nil))
	rideRepo.UpdateSeatsErrors = []error{
		repository.ErrVersionConflict,
		repository.ErrVersionConflict,
		repository.ErrVersionConflict,
	}
	rideService := service.NewRideService(rideRepo)

	err := rideService.RespondToRequest(context.Background(), "ride-1", "driver-1", "rider-a", false)
	if err != service.ErrConcurrentUpdate {
		t.Errorf("expected ErrConcurrentUpdate, got %v", err)
	}
}

func TestWorkflow_SingleSeatRide(t *testing.T) {
	// Capacity 1: rider A requests and is accepted, rider B is turned
	// away while A's pending request reserves the seat.
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 1, nil, nil))
	rideService := service.NewRideService(rideRepo)
	ctx := context.Background()

	if _, err := rideService.RequestSeat(ctx, "ride-1", "rider-a"); err != nil {
		t.Fatalf("rider A request failed: %v", err)
	}
	if _, err := rideService.RequestSeat(ctx, "ride-1", "rider-b"); err != service.ErrRideFull {
		t.Fatalf("rider B should see full, got %v", err)
	}
	if err := rideService.RespondToRequest(ctx, "ride-1", "driver-1", "rider-a", true); err != nil {
		t.Fatalf("accepting rider A failed: %v", err)
	}
	// B never made it into the requester set.
	if err := rideService.RespondToRequest(ctx, "ride-1", "driver-1", "rider-b", false); err != service.ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound for rider B, got %v", err)
	}

	stored := rideRepo.GetRide("ride-1")
	if len(stored.Passengers) != 1 || !stored.HasPassenger("rider-a") {
		t.Errorf("expected passengers={rider-a}, got %v", stored.Passengers)
	}
	if len(stored.Requesters) != 0 {
		t.Errorf("expected empty requesters, got %v", stored.Requesters)
	}
	if !stored.IsFull() {
		t.Error("ride should derive as full")
	}
}
