package tests

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"carona/internal/repository"
	"carona/internal/service"
)

func newUserService(userRepo *MockUserRepository, photos *MockPhotoStore) *service.UserService {
	if photos == nil {
		photos = &MockPhotoStore{}
	}
	return service.NewUserService(userRepo, photos, nil)
}

func TestRegister_ValidInput_Succeeds(t *testing.T) {
	userRepo := NewMockUserRepository()
	userService := newUserService(userRepo, nil)

	user, err := userService.Register(context.Background(), service.RegisterRequest{
		Name:       "Ana Souza",
		Email:      "Ana@Example.com",
		Occupation: "Engenharia Civil",
		BirthDate:  birthDate(21),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if user.ID == "" {
		t.Error("expected a generated user ID")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("user was not persisted: %v", err)
	}
	if stored.Name != "Ana Souza" || stored.Occupation != "Engenharia Civil" {
		t.Errorf("stored user differs from request: %+v", stored)
	}
}

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	userService := newUserService(NewMockUserRepository(), nil)
	ctx := context.Background()

	req := service.RegisterRequest{Name: "Ana", Email: "ana@example.com", BirthDate: birthDate(21)}
	if _, err := userService.Register(ctx, req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Case differences do not make a different email.
	req.Name = "Outra Ana"
	req.Email = "ANA@example.com"
	if _, err := userService.Register(ctx, req); err != repository.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_FutureBirthDate_Rejected(t *testing.T) {
	userService := newUserService(NewMockUserRepository(), nil)

	_, err := userService.Register(context.Background(), service.RegisterRequest{
		Name:      "Ana",
		Email:     "ana@example.com",
		BirthDate: time.Now().Add(24 * time.Hour),
	})
	if err != service.ErrInvalidBirthDate {
		t.Errorf("expected ErrInvalidBirthDate, got %v", err)
	}
}

func TestUpdateProfile_OverwritesFields(t *testing.T) {
	userRepo := NewMockUserRepository()
	userService := newUserService(userRepo, nil)
	ctx := context.Background()

	user, err := userService.Register(ctx, service.RegisterRequest{
		Name:      "Ana",
		Email:     "ana@example.com",
		BirthDate: birthDate(21),
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	updated, err := userService.UpdateProfile(ctx, user.ID, service.UpdateProfileRequest{
		Name:       "Ana Clara",
		Occupation: "Arquitetura",
		BirthDate:  birthDate(22),
		Bio:        "caronas aos sábados",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != "Ana Clara" || updated.Occupation != "Arquitetura" || updated.Bio != "caronas aos sábados" {
		t.Errorf("updated profile differs from request: %+v", updated)
	}
	if updated.Email != "ana@example.com" {
		t.Errorf("update must not touch the email, got %q", updated.Email)
	}
}

func TestUpdateProfile_UnknownUser_NotFound(t *testing.T) {
	userService := newUserService(NewMockUserRepository(), nil)

	_, err := userService.UpdateProfile(context.Background(), "missing", service.UpdateProfileRequest{
		Name:      "Ana",
		BirthDate: birthDate(21),
	})
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetPhoto_ValidDataURI_StoresAndLinks(t *testing.T) {
	userRepo := NewMockUserRepository()
	photos := &MockPhotoStore{}
	userService := newUserService(userRepo, photos)
	ctx := context.Background()

	user, err := userService.Register(ctx, service.RegisterRequest{
		Name:      "Ana",
		Email:     "ana@example.com",
		BirthDate: birthDate(21),
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	payload := []byte{0x89, 'P', 'N', 'G'}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	url, err := userService.SetPhoto(ctx, user.ID, dataURI)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if url == "" {
		t.Fatal("expected a photo URL")
	}
	if photos.SaveCalls != 1 {
		t.Errorf("expected 1 save call, got %d", photos.SaveCalls)
	}
	if string(photos.LastData) != string(payload) {
		t.Error("decoded bytes differ from original payload")
	}

	stored, _ := userRepo.GetByID(ctx, user.ID)
	if stored.PhotoURL != url {
		t.Errorf("profile photo URL not recorded, got %q", stored.PhotoURL)
	}
}

func TestSetPhoto_RejectsMalformedInput(t *testing.T) {
	userRepo := NewMockUserRepository()
	photos := &MockPhotoStore{}
	userService := newUserService(userRepo, photos)
	ctx := context.Background()

	user, err := userService.Register(ctx, service.RegisterRequest{
		Name:      "Ana",
		Email:     "ana@example.com",
		BirthDate: birthDate(21),
	})
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	cases := []struct {
		name    string
		dataURI string
	}{
		{"not a data URI", "https://example.com/photo.png"},
		{"non-image mime", "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("pdf"))},
		{"broken base64", "data:image/png;base64,???not-base64???"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := userService.SetPhoto(ctx, user.ID, tc.dataURI); err != service.ErrInvalidPhoto {
				t.Errorf("expected ErrInvalidPhoto, got %v", err)
			}
		})
	}
	if photos.SaveCalls != 0 {
		t.Errorf("invalid photos must never reach the store, got %d save calls", photos.SaveCalls)
	}
}

func TestSetPhoto_UnknownUser_NotFound(t *testing.T) {
	userService := newUserService(NewMockUserRepository(), &MockPhotoStore{})

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpg"))
	if _, err := userService.SetPhoto(context.Background(), "missing", dataURI); err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
