package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

// SetActive retires the user's current active row and inserts the new one.
// The unique partial index on (user_id) WHERE is_active makes a lost race
// surface as 23505: the loser's deactivate ran against a snapshot that missed
// the winner's row, so one retry sees it and succeeds.
func (r *locationRepository) SetActive(ctx context.Context, userID int, latitude, longitude float64) (*domain.Location, error) {
	location, err := r.setActiveOnce(ctx, userID, latitude, longitude)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return r.setActiveOnce(ctx, userID, latitude, longitude)
		}
		return nil, err
	}
	return location, nil
}

func (r *locationRepository) setActiveOnce(ctx context.Context, userID int, latitude, longitude float64) (*domain.Location, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	deactivate := `UPDATE locations SET is_active = false WHERE user_id = $1 AND is_active = true`
	if _, err := tx.ExecContext(ctx, deactivate, userID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous location: %w", err)
	}

	location := &domain.Location{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		IsActive:  true,
	}
	insert := `
		INSERT INTO locations (user_id, latitude, longitude, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, last_updated
	`
	if err := tx.QueryRowContext(ctx, insert, userID, latitude, longitude).
		Scan(&location.ID, &location.LastUpdated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepository) Deactivate(ctx context.Context, userID int) error {
	query := `UPDATE locations SET is_active = false WHERE user_id = $1 AND is_active = true`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *locationRepository) GetActiveForUser(ctx context.Context, userID int) (*domain.Location, error) {
	var location domain.Location
	query := `SELECT * FROM locations WHERE user_id = $1 AND is_active = true`
	err := r.db.GetContext(ctx, &location, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Location unknown, not an error.
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) ListActive(ctx context.Context) (map[int]*domain.Location, error) {
	var locations []*domain.Location
	query := `SELECT * FROM locations WHERE is_active = true`
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, err
	}

	byUser := make(map[int]*domain.Location, len(locations))
	for _, loc := range locations {
		byUser[loc.UserID] = loc
	}
	return byUser, nil
}
