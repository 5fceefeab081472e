package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type LocationRepository interface {
	// SetActive deactivates any current active row for the user and inserts
	// a new active one, preserving history.
	SetActive(ctx context.Context, userID int, latitude, longitude float64) (*domain.Location, error)
	// Deactivate clears the user's active row. Not an error if none exists.
	Deactivate(ctx context.Context, userID int) error
	// GetActiveForUser returns the at-most-one active row, or nil when the
	// user's location is unknown.
	GetActiveForUser(ctx context.Context, userID int) (*domain.Location, error)
	// ListActive returns every active location keyed by user id.
	ListActive(ctx context.Context) (map[int]*domain.Location, error)
}
