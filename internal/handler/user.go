package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carona/internal/domain"
	"carona/internal/middleware"
	"carona/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name       string    `json:"name" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Occupation string    `json:"occupation" binding:"required"`
	BirthDate  time.Time `json:"birth_date" binding:"required"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Occupation string    `json:"occupation"`
	BirthDate  time.Time `json:"birth_date"`
	Age        int       `json:"age"`
	PhotoURL   string    `json:"photo_url,omitempty"`
	Bio        string    `json:"bio,omitempty"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Occupation: u.Occupation,
		BirthDate:  u.BirthDate,
		Age:        u.Age(time.Now()),
		PhotoURL:   u.PhotoURL,
		Bio:        u.Bio,
	}
}

// Register handles POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), service.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Occupation: req.Occupation,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResponse(user))
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

// UpdateMeRequest is the HTTP request body for profile updates.
type UpdateMeRequest struct {
	Name       string    `json:"name" binding:"required"`
	Occupation string    `json:"occupation" binding:"required"`
	BirthDate  time.Time `json:"birth_date" binding:"required"`
	Bio        string    `json:"bio"`
}

// UpdateMe handles PATCH /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.UpdateProfileRequest{
		Name:       req.Name,
		Occupation: req.Occupation,
		BirthDate:  req.BirthDate,
		Bio:        req.Bio,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// UploadPhotoRequest is the HTTP request body for a profile photo upload.
type UploadPhotoRequest struct {
	Photo string `json:"photo" binding:"required"` // base64 data URI
}

// UploadPhotoResponse carries the stored photo URL.
type UploadPhotoResponse struct {
	PhotoURL string `json:"photo_url"`
}

// UploadPhoto handles POST /v1/users/me/photo
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	url, err := h.userService.SetPhoto(c.Request.Context(), middleware.UserID(c), req.Photo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadPhotoResponse{PhotoURL: url})
}
