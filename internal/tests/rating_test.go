package tests

import (
	"context"
	"testing"

	"carona/internal/repository"
	"carona/internal/service"
)

func TestCreateRating_ByConfirmedPassenger_Succeeds(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ratingRepo := NewMockRatingRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, nil, []string{"rider-a"}))

	ratingService := service.NewRatingService(ratingRepo, rideRepo)
	rating, err := ratingService.CreateRating(context.Background(), service.CreateRatingRequest{
		RideID:   "ride-1",
		AuthorID: "rider-a",
		Score:    4,
		Comment:  "boa viagem",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if rating.ID == "" {
		t.Error("expected a generated rating ID")
	}
	if rating.DriverID != "driver-1" {
		t.Errorf("expected driver ID copied from ride, got %q", rating.DriverID)
	}

	stored := ratingRepo.Ratings()
	if len(stored) != 1 || stored[0].Score != 4 || stored[0].Comment != "boa viagem" {
		t.Errorf("stored rating differs from request: %+v", stored)
	}
}

func TestCreateRating_NonPassenger_Forbidden(t *testing.T) {
	rideRepo := NewMockRideRepository()
	// rider-b has only a pending request; that is not enough to rate.
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, []string{"rider-b"}, []string{"rider-a"}))

	ratingService := service.NewRatingService(NewMockRatingRepository(), rideRepo)
	for _, author := range []string{"rider-b", "stranger", "driver-1"} {
		_, err := ratingService.CreateRating(context.Background(), service.CreateRatingRequest{
			RideID:   "ride-1",
			AuthorID: author,
			Score:    5,
		})
		if err != service.ErrNotPassenger {
			t.Errorf("author %s: expected ErrNotPassenger, got %v", author, err)
		}
	}
}

func TestCreateRating_ScoreBounds(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, nil, []string{"rider-a"}))
	ratingService := service.NewRatingService(NewMockRatingRepository(), rideRepo)

	for _, score := range []int{0, -1, 6} {
		_, err := ratingService.CreateRating(context.Background(), service.CreateRatingRequest{
			RideID:   "ride-1",
			AuthorID: "rider-a",
			Score:    score,
		})
		if err != service.ErrInvalidScore {
			t.Errorf("score=%d: expected ErrInvalidScore, got %v", score, err)
		}
	}

	for _, score := range []int{1, 5} {
		_, err := ratingService.CreateRating(context.Background(), service.CreateRatingRequest{
			RideID:   "ride-1",
			AuthorID: "rider-a",
			Score:    score,
		})
		if err != nil {
			t.Errorf("score=%d: expected success, got %v", score, err)
		}
	}
}

func TestCreateRating_UnknownRide_NotFound(t *testing.T) {
	ratingService := service.NewRatingService(NewMockRatingRepository(), NewMockRideRepository())

	_, err := ratingService.CreateRating(context.Background(), service.CreateRatingRequest{
		RideID:   "missing",
		AuthorID: "rider-a",
		Score:    5,
	})
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRating_FeedsDriverMean(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ratingRepo := NewMockRatingRepository()
	rideRepo.AddRide(openRide("ride-1", "driver-1", 3, nil, []string{"rider-a", "rider-b"}))

	ratingService := service.NewRatingService(ratingRepo, rideRepo)
	ctx := context.Background()

	for author, score := range map[string]int{"rider-a": 3, "rider-b": 5} {
		if _, err := ratingService.CreateRating(ctx, service.CreateRatingRequest{
			RideID:   "ride-1",
			AuthorID: author,
			Score:    score,
		}); err != nil {
			t.Fatalf("rating by %s failed: %v", author, err)
		}
	}

	mean, count, err := ratingRepo.MeanForDriver(ctx, "driver-1")
	if err != nil {
		t.Fatalf("mean failed: %v", err)
	}
	if count != 2 || mean != 4.0 {
		t.Errorf("expected mean 4.0 over 2 ratings, got %v over %d", mean, count)
	}
}
