package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateOnlineStatus(ctx context.Context, id int, isOnline bool) error
}
