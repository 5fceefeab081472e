package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type InterestRepository interface {
	Create(ctx context.Context, interest *domain.Interest) error
	GetByID(ctx context.Context, id int) (*domain.Interest, error)
	ListRoots(ctx context.Context) ([]*domain.Interest, error)
	ListChildren(ctx context.Context, parentID int) ([]*domain.Interest, error)
	// Delete removes the interest; children cascade at the database level.
	Delete(ctx context.Context, id int) error
}

type UserInterestRepository interface {
	Add(ctx context.Context, userID, interestID int) error
	Remove(ctx context.Context, userID, interestID int) error
	ListForUser(ctx context.Context, userID int) ([]*domain.Interest, error)
	// SharedCounts returns, for every other user with at least one interest
	// in common with the given user, the count of shared interest ids. Users
	// absent from the map share nothing. Computed as a single grouped join.
	SharedCounts(ctx context.Context, userID int) (map[int]int, error)
}
