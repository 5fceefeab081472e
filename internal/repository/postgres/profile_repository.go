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

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, display_name, bio, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Username, profile.DisplayName, profile.Bio, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "profiles_username_key" {
				return domain.ErrUsernameTaken
			}
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET username = $1, display_name = $2, bio = $3, avatar_url = $4,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Username, profile.DisplayName, profile.Bio, profile.AvatarURL, profile.UserID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return err
	}
	return nil
}

func (r *profileRepository) ListExcluding(ctx context.Context, userID int) ([]*domain.Profile, error) {
	query := `SELECT * FROM profiles WHERE user_id != $1 ORDER BY user_id`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var profile domain.Profile
		// One malformed row must not fail the whole candidate set.
		if err := rows.StructScan(&profile); err != nil {
			continue
		}
		profiles = append(profiles, &profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
