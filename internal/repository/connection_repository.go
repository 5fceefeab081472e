package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.Connection) error
	GetByID(ctx context.Context, id int) (*domain.Connection, error)
	// GetByUsers looks up the ordered (requester, receiver) pair.
	GetByUsers(ctx context.Context, requesterID, receiverID int) (*domain.Connection, error)
	// GetBetween looks up a connection in either direction.
	GetBetween(ctx context.Context, user1ID, user2ID int) (*domain.Connection, error)
	UpdateStatus(ctx context.Context, id int, status domain.ConnectionStatus) error
	ListIncoming(ctx context.Context, receiverID int, status domain.ConnectionStatus) ([]*domain.Connection, error)
	ListOutgoing(ctx context.Context, requesterID int, status domain.ConnectionStatus) ([]*domain.Connection, error)
	ListAcceptedForUser(ctx context.Context, userID int) ([]*domain.Connection, error)
}
