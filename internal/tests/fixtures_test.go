package tests

import (
	"time"

	"carona/internal/domain"
	"carona/internal/service"
)

func validAddress(place string) domain.Address {
	return domain.Address{
		Place:        place,
		PostalCode:   "35400-000",
		Street:       "Rua das Flores",
		Number:       100,
		Neighborhood: "Centro",
		City:         "Ouro Preto",
		State:        "MG",
	}
}

func validCreateRide(driverID string) service.CreateRideRequest {
	departure := time.Now().Add(24 * time.Hour)
	return service.CreateRideRequest{
		DriverID:    driverID,
		Vehicle:     "Gol prata",
		Capacity:    3,
		Fare:        12.5,
		Departure:   departure,
		Arrival:     departure.Add(45 * time.Minute),
		Origin:      validAddress("Campus"),
		Destination: validAddress("Rodoviária"),
	}
}

// openRide builds a stored ride with the given seat sets.
func openRide(id, driverID string, capacity int, requesters, passengers []string) *domain.Ride {
	departure := time.Now().Add(24 * time.Hour)
	return &domain.Ride{
		ID:            id,
		DriverID:      driverID,
		Vehicle:       "Uno vermelho",
		Capacity:      capacity,
		Fare:          10,
		DepartureTime: departure,
		ArrivalTime:   departure.Add(30 * time.Minute),
		Origin:        validAddress("Campus"),
		Destination:   validAddress("Centro"),
		Status:        domain.RideStatusOpen,
		Requesters:    requesters,
		Passengers:    passengers,
		CreatedAt:     time.Now(),
	}
}

func birthDate(age int) time.Time {
	return time.Now().AddDate(-age, 0, -1)
}
