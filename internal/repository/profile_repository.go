package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// ListExcluding returns every profile except the given user's, ordered by
	// user id. Rows that fail to scan are skipped rather than failing the set.
	ListExcluding(ctx context.Context, userID int) ([]*domain.Profile, error)
}
