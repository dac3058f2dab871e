package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carona/internal/domain"
	"carona/internal/middleware"
	"carona/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService    *service.RideService
	listingService *service.ListingService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, listingService *service.ListingService) *RideHandler {
	return &RideHandler{
		rideService:    rideService,
		listingService: listingService,
	}
}

// AddressPayload is the wire form of a structured address.
type AddressPayload struct {
	Place        string `json:"place" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Street       string `json:"street" binding:"required"`
	Number       int    `json:"number" binding:"required,min=1"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
}

func (p AddressPayload) toDomain() domain.Address {
	return domain.Address{
		Place:        p.Place,
		PostalCode:   p.PostalCode,
		Street:       p.Street,
		Number:       p.Number,
		Neighborhood: p.Neighborhood,
		City:         p.City,
		State:        p.State,
	}
}

func addressPayload(a domain.Address) AddressPayload {
	return AddressPayload{
		Place:        a.Place,
		PostalCode:   a.PostalCode,
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}

// CreateRideRequest is the HTTP request body for publishing a ride.
type CreateRideRequest struct {
	Vehicle     string         `json:"vehicle" binding:"required"`
	Capacity    int            `json:"capacity" binding:"required,min=1"`
	Fare        float64        `json:"fare" binding:"min=0"`
	Departure   time.Time      `json:"departure_time" binding:"required"`
	Arrival     time.Time      `json:"arrival_time" binding:"required"`
	Origin      AddressPayload `json:"origin" binding:"required"`
	Destination AddressPayload `json:"destination" binding:"required"`
}

// RideResponse is the HTTP response for a created ride.
type RideResponse struct {
	ID          string         `json:"id"`
	DriverID    string         `json:"driver_id"`
	Vehicle     string         `json:"vehicle"`
	Capacity    int            `json:"capacity"`
	Fare        float64        `json:"fare"`
	Departure   time.Time      `json:"departure_time"`
	Arrival     time.Time      `json:"arrival_time"`
	Origin      AddressPayload `json:"origin"`
	Destination AddressPayload `json:"destination"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		DriverID:    middleware.UserID(c),
		Vehicle:     req.Vehicle,
		Capacity:    req.Capacity,
		Fare:        req.Fare,
		Departure:   req.Departure,
		Arrival:     req.Arrival,
		Origin:      req.Origin.toDomain(),
		Destination: req.Destination.toDomain(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RideResponse{
		ID:          ride.ID,
		DriverID:    ride.DriverID,
		Vehicle:     ride.Vehicle,
		Capacity:    ride.Capacity,
		Fare:        ride.Fare,
		Departure:   ride.DepartureTime,
		Arrival:     ride.ArrivalTime,
		Origin:      addressPayload(ride.Origin),
		Destination: addressPayload(ride.Destination),
		Status:      string(ride.Status),
		CreatedAt:   ride.CreatedAt,
	})
}

// RequestSeatResponse is the HTTP response for a seat request.
type RequestSeatResponse struct {
	Status string `json:"status"`
}

// RequestSeat handles POST /v1/rides/:id/requests
func (h *RideHandler) RequestSeat(c *gin.Context) {
	outcome, err := h.rideService.RequestSeat(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	status := "requested"
	if outcome == service.RequestAlreadyPassenger {
		status = "already_passenger"
	}
	c.JSON(http.StatusOK, RequestSeatResponse{Status: status})
}

// RespondRequest is the HTTP request body for resolving a seat request.
// The flag is a pointer so a missing field is told apart from false.
type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// RespondToRequest handles POST /v1/rides/:id/requests/:riderId/response
func (h *RideHandler) RespondToRequest(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "accept flag is required"})
		return
	}

	err := h.rideService.RespondToRequest(
		c.Request.Context(),
		c.Param("id"),
		middleware.UserID(c),
		c.Param("riderId"),
		*req.Accept,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	status := "rejected"
	if *req.Accept {
		status = "accepted"
	}
	c.JSON(http.StatusOK, RequestSeatResponse{Status: status})
}

// DriverSummaryResponse is the driver snapshot on each listing entry.
type DriverSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url,omitempty"`
	Rating   float64 `json:"rating"`
}

// RideSummaryResponse is one entry of GET /v1/rides.
type RideSummaryResponse struct {
	ID          string                `json:"id"`
	Vehicle     string                `json:"vehicle"`
	Fare        float64               `json:"fare"`
	Departure   time.Time             `json:"departure_time"`
	Arrival     time.Time             `json:"arrival_time"`
	Origin      AddressPayload        `json:"origin"`
	Destination AddressPayload        `json:"destination"`
	SeatsLeft   int                   `json:"seats_left"`
	Driver      DriverSummaryResponse `json:"driver"`
}

// ListRides handles GET /v1/rides
func (h *RideHandler) ListRides(c *gin.Context) {
	summaries, err := h.listingService.ListOpenRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RideSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, RideSummaryResponse{
			ID:          s.ID,
			Vehicle:     s.Vehicle,
			Fare:        s.Fare,
			Departure:   s.Departure,
			Arrival:     s.Arrival,
			Origin:      addressPayload(s.Origin),
			Destination: addressPayload(s.Destination),
			SeatsLeft:   s.SeatsLeft,
			Driver: DriverSummaryResponse{
				ID:       s.Driver.ID,
				Name:     s.Driver.Name,
				PhotoURL: s.Driver.PhotoURL,
				Rating:   s.Driver.Rating,
			},
		})
	}

	c.JSON(http.StatusOK, response)
}

// DriverProfileResponse is the expanded driver block on the detail view.
type DriverProfileResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url,omitempty"`
	Bio      string  `json:"bio,omitempty"`
	Age      int     `json:"age"`
	Rating   float64 `json:"rating"`
	Ratings  int     `json:"ratings"`
}

// PassengerProfileResponse is the public profile of a confirmed passenger.
type PassengerProfileResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Occupation string `json:"occupation"`
	Age        int    `json:"age"`
}

// RideDetailResponse is the body of GET /v1/rides/:id.
type RideDetailResponse struct {
	ID          string                     `json:"id"`
	Vehicle     string                     `json:"vehicle"`
	Capacity    int                        `json:"capacity"`
	Fare        float64                    `json:"fare"`
	Departure   time.Time                  `json:"departure_time"`
	Arrival     time.Time                  `json:"arrival_time"`
	Origin      AddressPayload             `json:"origin"`
	Destination AddressPayload             `json:"destination"`
	Status      string                     `json:"status"`
	SeatsLeft   int                        `json:"seats_left"`
	Driver      DriverProfileResponse      `json:"driver"`
	Passengers  []PassengerProfileResponse `json:"passengers"`
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	detail, err := h.listingService.GetRideDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	passengers := make([]PassengerProfileResponse, 0, len(detail.Passengers))
	for _, p := range detail.Passengers {
		passengers = append(passengers, PassengerProfileResponse{
			ID:         p.ID,
			Name:       p.Name,
			PhotoURL:   p.PhotoURL,
			Occupation: p.Occupation,
			Age:        p.Age,
		})
	}

	c.JSON(http.StatusOK, RideDetailResponse{
		ID:          detail.ID,
		Vehicle:     detail.Vehicle,
		Capacity:    detail.Capacity,
		Fare:        detail.Fare,
		Departure:   detail.Departure,
		Arrival:     detail.Arrival,
		Origin:      addressPayload(detail.Origin),
		Destination: addressPayload(detail.Destination),
		Status:      string(detail.Status),
		SeatsLeft:   detail.SeatsLeft,
		Driver: DriverProfileResponse{
			ID:       detail.Driver.ID,
			Name:     detail.Driver.Name,
			PhotoURL: detail.Driver.PhotoURL,
			Bio:      detail.Driver.Bio,
			Age:      detail.Driver.Age,
			Rating:   detail.Driver.Rating,
			Ratings:  detail.Driver.Ratings,
		},
		Passengers: passengers,
	})
}
