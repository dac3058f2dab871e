package service

import (
	"context"
	"encoding/base64"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"carona/internal/domain"
	redisstore "carona/internal/redis"
	"carona/internal/repository"
)

// PhotoStore saves profile photos and returns their public URL.
type PhotoStore interface {
	Save(userID, extension string, data []byte) (string, error)
}

// UserService handles registration and profile management.
type UserService struct {
	userRepo  repository.UserRepository
	photos    PhotoStore
	snapshots *redisstore.SnapshotStore // optional
}

// NewUserService creates a new UserService. snapshots may be nil.
func NewUserService(userRepo repository.UserRepository, photos PhotoStore, snapshots *redisstore.SnapshotStore) *UserService {
	return &UserService{userRepo: userRepo, photos: photos, snapshots: snapshots}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Name       string
	Email      string
	Occupation string
	BirthDate  time.Time
}

// Register creates a new user. Emails are unique across the system.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if !req.BirthDate.Before(time.Now()) {
		return nil, ErrInvalidBirthDate
	}

	// The unique index is the real guard; this check just produces a
	// friendlier conflict for the common case.
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, repository.ErrDuplicateEmail
	}

	now := time.Now()
	user := &domain.User{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      strings.ToLower(req.Email),
		Occupation: req.Occupation,
		BirthDate:  req.BirthDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile retrieves a user by ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfileRequest contains the mutable profile fields.
type UpdateProfileRequest struct {
	Name       string
	Occupation string
	BirthDate  time.Time
	Bio        string
}

// UpdateProfile overwrites the caller's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.User, error) {
	if !req.BirthDate.Before(time.Now()) {
		return nil, ErrInvalidBirthDate
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Occupation = req.Occupation
	user.BirthDate = req.BirthDate
	user.Bio = req.Bio
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx, user.ID)
	return user, nil
}

// dataURIPattern matches base64 data URIs like "data:image/png;base64,...".
var dataURIPattern = regexp.MustCompile(`^data:([A-Za-z-+/]+);base64,(.+)$`)

// SetPhoto decodes a base64 data-URI photo, stores it and records the
// resulting URL on the profile.
func (s *UserService) SetPhoto(ctx context.Context, userID, dataURI string) (string, error) {
	matches := dataURIPattern.FindStringSubmatch(dataURI)
	if len(matches) != 3 {
		return "", ErrInvalidPhoto
	}

	mimeType := matches[1]
	parts := strings.SplitN(mimeType, "/", 2)
	if len(parts) != 2 || parts[0] != "image" {
		return "", ErrInvalidPhoto
	}
	extension := parts[1]

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return "", ErrInvalidPhoto
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.photos.Save(userID, extension, data)
	if err != nil {
		return "", err
	}

	user.PhotoURL = url
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}
	s.invalidateSnapshot(ctx, user.ID)
	return url, nil
}

// invalidateSnapshot drops the cached listing snapshot after a profile
// edit so the feed does not serve stale names or photos for a whole TTL.
func (s *UserService) invalidateSnapshot(ctx context.Context, userID string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.InvalidateDriver(ctx, userID); err != nil {
		log.Printf("driver snapshot invalidation failed for %s: %v", userID, err)
	}
}
