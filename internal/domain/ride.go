package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusOpen   RideStatus = "OPEN"
	RideStatusFull   RideStatus = "FULL"
	RideStatusClosed RideStatus = "CLOSED"
)

// Address is a structured pickup or drop-off location.
type Address struct {
	Place        string
	PostalCode   string
	Street       string
	Number       int
	Neighborhood string
	City         string
	State        string
}

// Complete reports whether every address sub-field is filled in.
func (a Address) Complete() bool {
	return a.Place != "" && a.PostalCode != "" && a.Street != "" &&
		a.Number > 0 && a.Neighborhood != "" && a.City != "" && a.State != ""
}

// Ride represents a published trip offer with a fixed seat count.
//
// Requesters holds riders with a pending, unresolved seat request;
// Passengers holds riders with a confirmed seat. A rider appears at most
// once per set and never in both, and the driver appears in neither.
type Ride struct {
	ID            string
	DriverID      string
	Vehicle       string
	Capacity      int // seats offered, excluding the driver
	Fare          float64
	DepartureTime time.Time
	ArrivalTime   time.Time
	Origin        Address
	Destination   Address
	Status        RideStatus
	Requesters    []string
	Passengers    []string
	Version       int64 // bumped by every seat-set mutation
	CreatedAt     time.Time
}

// ListingSeatsLeft is the publicly advertised availability: pending
// requests reserve capacity alongside confirmed passengers, so a ride
// disappears from the feed as soon as its seats are spoken for.
func (r *Ride) ListingSeatsLeft() int {
	return r.Capacity - len(r.Requesters) - len(r.Passengers)
}

// ConfirmedSeatsLeft counts only confirmed passengers against capacity.
// Used when accepting a request (the requester leaves the reservation
// pool as it is accepted) and on the ride detail view.
func (r *Ride) ConfirmedSeatsLeft() int {
	return r.Capacity - len(r.Passengers)
}

// IsFull reports whether every seat is confirmed. Fullness is derived
// from set sizes on read; it is never written back to Status.
func (r *Ride) IsFull() bool {
	return r.ConfirmedSeatsLeft() <= 0
}

// HasRequester reports whether the rider has a pending request.
func (r *Ride) HasRequester(riderID string) bool {
	return contains(r.Requesters, riderID)
}

// HasPassenger reports whether the rider holds a confirmed seat.
func (r *Ride) HasPassenger(riderID string) bool {
	return contains(r.Passengers, riderID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// WithoutRequester returns the requester set minus the given rider.
func (r *Ride) WithoutRequester(riderID string) []string {
	out := make([]string, 0, len(r.Requesters))
	for _, v := range r.Requesters {
		if v != riderID {
			out = append(out, v)
		}
	}
	return out
}
