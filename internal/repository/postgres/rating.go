package postgres

import (
	"context"
	"database/sql"

	"carona/internal/domain"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new RatingRepository.
func NewRatingRepository(db *sql.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create persists a new rating.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, ride_id, author_id, driver_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		rating.ID,
		rating.RideID,
		rating.AuthorID,
		rating.DriverID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)
	return err
}

// MeanForDriver returns the mean score and rating count for a driver.
func (r *RatingRepository) MeanForDriver(ctx context.Context, driverID string) (float64, int, error) {
	query := `SELECT COALESCE(AVG(score), 0), COUNT(*) FROM ratings WHERE driver_id = $1`

	var mean float64
	var count int
	if err := r.db.QueryRowContext(ctx, query, driverID).Scan(&mean, &count); err != nil {
		return 0, 0, err
	}
	return mean, count, nil
}
