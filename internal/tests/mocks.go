package tests

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"carona/internal/domain"
	"carona/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is an in-memory implementation of
// repository.RideRepository with real conditional-update semantics, so
// concurrency tests exercise the same version races as the store.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount      int32
	UpdateSeatsCallCount int32

	// Error injection
	CreateError error
	GetError    error
	// UpdateSeatsErrors is consumed one entry per call before the real
	// update logic runs; nil entries fall through to it.
	UpdateSeatsErrors []error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{rides: make(map[string]*domain.Ride)}
}

// AddRide seeds a ride into the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = copyRide(ride)
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil
	}
	return copyRide(ride)
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = copyRide(ride)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRide(ride), nil
}

func (m *MockRideRepository) GetOpen(ctx context.Context) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, ride := range m.rides {
		if ride.Status == domain.RideStatusOpen {
			result = append(result, copyRide(ride))
		}
	}
	return result, nil
}

func (m *MockRideRepository) UpdateSeats(ctx context.Context, id string, requesters, passengers []string, expectedVersion int64) error {
	atomic.AddInt32(&m.UpdateSeatsCallCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.UpdateSeatsErrors) > 0 {
		err := m.UpdateSeatsErrors[0]
		m.UpdateSeatsErrors = m.UpdateSeatsErrors[1:]
		if err != nil {
			return err
		}
	}

	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Version != expectedVersion {
		return repository.ErrVersionConflict
	}

	ride.Requesters = append([]string{}, requesters...)
	ride.Passengers = append([]string{}, passengers...)
	ride.Version++
	return nil
}

func copyRide(ride *domain.Ride) *domain.Ride {
	clone := *ride
	clone.Requesters = append([]string{}, ride.Requesters...)
	clone.Passengers = append([]string{}, ride.Passengers...)
	return &clone
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser seeds a user into the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

// MockRatingRepository is a mock implementation of repository.RatingRepository.
type MockRatingRepository struct {
	mu      sync.RWMutex
	ratings []*domain.Rating

	CreateError error
	MeanError   error
}

// NewMockRatingRepository creates a new mock rating repository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{}
}

// AddRating seeds a rating into the mock repository.
func (m *MockRatingRepository) AddRating(rating *domain.Rating) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings = append(m.ratings, rating)
}

// Ratings returns all stored ratings for assertions.
func (m *MockRatingRepository) Ratings() []*domain.Rating {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Rating{}, m.ratings...)
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratings = append(m.ratings, rating)
	return nil
}

func (m *MockRatingRepository) MeanForDriver(ctx context.Context, driverID string) (float64, int, error) {
	if m.MeanError != nil {
		return 0, 0, m.MeanError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count int
	for _, rating := range m.ratings {
		if rating.DriverID == driverID {
			sum += rating.Score
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ──────────────────────────────────────────────
// MOCK PHOTO STORE
// ──────────────────────────────────────────────

// MockPhotoStore is a mock implementation of service.PhotoStore.
type MockPhotoStore struct {
	mu        sync.Mutex
	SaveCalls int
	LastData  []byte

	SaveError error
}

func (m *MockPhotoStore) Save(userID, extension string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return "", m.SaveError
	}
	m.SaveCalls++
	m.LastData = data
	return fmt.Sprintf("/uploads/users/%s/profile.%s", userID, extension), nil
}
