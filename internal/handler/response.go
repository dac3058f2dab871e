package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"carona/internal/repository"
	"carona/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		// Collaborator failures are logged in full but never leaked.
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(code, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrRequestNotFound):
		return http.StatusNotFound

	// Authority over the target ride
	case errors.Is(err, service.ErrNotRideDriver),
		errors.Is(err, service.ErrNotPassenger):
		return http.StatusForbidden

	// Bad request - semantic validation and dominant-reason rejections
	case errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidVehicle),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidFare),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrIncompleteAddress),
		errors.Is(err, service.ErrOwnRideRequest),
		errors.Is(err, service.ErrRideFull),
		errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidBirthDate),
		errors.Is(err, service.ErrInvalidPhoto):
		return http.StatusBadRequest

	// Conflicts - duplicates and lost races (retryable)
	case errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrConcurrentUpdate),
		errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
