package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore caches the driver snapshot shown on ride listings so the
// feed does not hit Postgres once per ride for profile and rating data.
type SnapshotStore struct {
	client *redis.Client
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

// DriverSnapshotTTL keeps snapshots short-lived; a fresh rating shows up
// in listings within this window.
const DriverSnapshotTTL = 30 * time.Second

const driverSnapshotPrefix = "snapshot:driver:"

// CachedDriver is the cached listing snapshot of a driver.
type CachedDriver struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PhotoURL string  `json:"photo_url"`
	Rating   float64 `json:"rating"`
	Ratings  int     `json:"ratings"`
}

// GetDriver retrieves a driver snapshot. Returns (nil, nil) on a miss.
func (s *SnapshotStore) GetDriver(ctx context.Context, driverID string) (*CachedDriver, error) {
	data, err := s.client.Get(ctx, driverSnapshotPrefix+driverID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var driver CachedDriver
	if err := json.Unmarshal(data, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

// SetDriver stores a driver snapshot.
func (s *SnapshotStore) SetDriver(ctx context.Context, driver *CachedDriver) error {
	data, err := json.Marshal(driver)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, driverSnapshotPrefix+driver.ID, data, DriverSnapshotTTL).Err()
}

// InvalidateDriver removes a driver snapshot, used after profile edits.
func (s *SnapshotStore) InvalidateDriver(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, driverSnapshotPrefix+driverID).Err()
}
