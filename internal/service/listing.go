package service

import (
	"context"
	"errors"
	"log"
	"time"

	"carona/internal/domain"
	redisstore "carona/internal/redis"
	"carona/internal/repository"
)

// defaultDriverRating is advertised for drivers with no ratings yet.
const defaultDriverRating = 5.0

// placeholderDriverName is shown when a ride's driver record cannot be
// resolved; the feed degrades instead of failing whole.
const placeholderDriverName = "unknown driver"

// ListingService produces the public feed of open rides and the ride
// detail view. Read-only: it never mutates a ride.
type ListingService struct {
	rideRepo   repository.RideRepository
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
	snapshots  *redisstore.SnapshotStore // optional
}

// NewListingService creates a new ListingService. snapshots may be nil.
func NewListingService(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	ratingRepo repository.RatingRepository,
	snapshots *redisstore.SnapshotStore,
) *ListingService {
	return &ListingService{
		rideRepo:   rideRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		snapshots:  snapshots,
	}
}

// DriverSummary is the driver snapshot carried by each listing entry.
type DriverSummary struct {
	ID       string
	Name     string
	PhotoURL string
	Rating   float64
}

// RideSummary is one entry of the public ride feed.
type RideSummary struct {
	ID          string
	Vehicle     string
	Fare        float64
	Departure   time.Time
	Arrival     time.Time
	Origin      domain.Address
	Destination domain.Address
	SeatsLeft   int // capacity minus requesters and passengers
	Driver      DriverSummary
}

// DriverProfile is the expanded driver block on the ride detail view.
type DriverProfile struct {
	ID       string
	Name     string
	PhotoURL string
	Bio      string
	Age      int
	Rating   float64
	Ratings  int
}

// PassengerProfile is the public profile of a confirmed passenger.
type PassengerProfile struct {
	ID         string
	Name       string
	PhotoURL   string
	Occupation string
	Age        int
}

// RideDetail is the full view of a single ride.
type RideDetail struct {
	ID          string
	Vehicle     string
	Capacity    int
	Fare        float64
	Departure   time.Time
	Arrival     time.Time
	Origin      domain.Address
	Destination domain.Address
	Status      domain.RideStatus
	SeatsLeft   int // capacity minus confirmed passengers only
	Driver      DriverProfile
	Passengers  []PassengerProfile
}

// ListOpenRides returns the feed of OPEN rides that still advertise
// availability. Pending requests reserve seats here, so a ride leaves
// the feed as soon as requests plus passengers reach capacity.
func (s *ListingService) ListOpenRides(ctx context.Context) ([]RideSummary, error) {
	rides, err := s.rideRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]RideSummary, 0, len(rides))
	for _, ride := range rides {
		seats := ride.ListingSeatsLeft()
		if seats <= 0 {
			continue
		}

		summaries = append(summaries, RideSummary{
			ID:          ride.ID,
			Vehicle:     ride.Vehicle,
			Fare:        ride.Fare,
			Departure:   ride.DepartureTime,
			Arrival:     ride.ArrivalTime,
			Origin:      ride.Origin,
			Destination: ride.Destination,
			SeatsLeft:   seats,
			Driver:      s.driverSummary(ctx, ride.DriverID),
		})
	}
	return summaries, nil
}

// GetRideDetail resolves a ride, its driver profile and the public
// profiles of its confirmed passengers. Availability on the detail view
// counts confirmed passengers only; pending requests are not shown.
func (s *ListingService) GetRideDetail(ctx context.Context, rideID string) (*RideDetail, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	driver, err := s.userRepo.GetByID(ctx, ride.DriverID)
	if err != nil {
		return nil, err
	}

	rating, count := s.meanRating(ctx, ride.DriverID)

	now := time.Now()
	detail := &RideDetail{
		ID:          ride.ID,
		Vehicle:     ride.Vehicle,
		Capacity:    ride.Capacity,
		Fare:        ride.Fare,
		Departure:   ride.DepartureTime,
		Arrival:     ride.ArrivalTime,
		Origin:      ride.Origin,
		Destination: ride.Destination,
		Status:      ride.Status,
		SeatsLeft:   ride.ConfirmedSeatsLeft(),
		Driver: DriverProfile{
			ID:       driver.ID,
			Name:     driver.Name,
			PhotoURL: driver.PhotoURL,
			Bio:      driver.Bio,
			Age:      driver.Age(now),
			Rating:   rating,
			Ratings:  count,
		},
		Passengers: make([]PassengerProfile, 0, len(ride.Passengers)),
	}

	for _, passengerID := range ride.Passengers {
		passenger, err := s.userRepo.GetByID(ctx, passengerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		detail.Passengers = append(detail.Passengers, PassengerProfile{
			ID:         passenger.ID,
			Name:       passenger.Name,
			PhotoURL:   passenger.PhotoURL,
			Occupation: passenger.Occupation,
			Age:        passenger.Age(now),
		})
	}

	return detail, nil
}

// driverSummary resolves the snapshot for one feed entry, consulting the
// cache first. A missing driver record degrades to a placeholder.
func (s *ListingService) driverSummary(ctx context.Context, driverID string) DriverSummary {
	if s.snapshots != nil {
		cached, err := s.snapshots.GetDriver(ctx, driverID)
		if err != nil {
			log.Printf("driver snapshot cache read failed: %v", err)
		}
		if cached != nil {
			return DriverSummary{ID: cached.ID, Name: cached.Name, PhotoURL: cached.PhotoURL, Rating: cached.Rating}
		}
	}

	rating, count := s.meanRating(ctx, driverID)

	summary := DriverSummary{ID: driverID, Name: placeholderDriverName, Rating: rating}
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err == nil {
		summary.Name = driver.Name
		summary.PhotoURL = driver.PhotoURL
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("driver lookup failed for listing: %v", err)
	}

	if s.snapshots != nil {
		_ = s.snapshots.SetDriver(ctx, &redisstore.CachedDriver{
			ID:       summary.ID,
			Name:     summary.Name,
			PhotoURL: summary.PhotoURL,
			Rating:   summary.Rating,
			Ratings:  count,
		})
	}
	return summary
}

// meanRating reads the driver's aggregate; an unrated driver advertises
// the default rating.
func (s *ListingService) meanRating(ctx context.Context, driverID string) (float64, int) {
	mean, count, err := s.ratingRepo.MeanForDriver(ctx, driverID)
	if err != nil {
		log.Printf("rating aggregation failed for driver %s: %v", driverID, err)
		return defaultDriverRating, 0
	}
	if count == 0 {
		return defaultDriverRating, 0
	}
	return mean, count
}
