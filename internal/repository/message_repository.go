package repository

import (
	"context"

	"github.com/kindredapp/kindred-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListThread returns messages between two users in both directions,
	// newest first.
	ListThread(ctx context.Context, user1ID, user2ID int, limit, offset int) ([]*domain.Message, error)
	// MarkThreadRead sets read_at once on every unread message sent to
	// receiverID by senderID. Returns the number of messages marked.
	MarkThreadRead(ctx context.Context, receiverID, senderID int) (int, error)
	CountUnread(ctx context.Context, receiverID int) (int, error)
}
