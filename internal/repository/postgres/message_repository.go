package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, message_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, msg.SenderID, msg.ReceiverID, msg.Content, msg.MessageType).
		Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListThread(ctx context.Context, user1ID, user2ID int, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	err := r.db.SelectContext(ctx, &messages, query, user1ID, user2ID, limit, offset)
	return messages, err
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, receiverID, senderID int) (int, error) {
	// read_at is set once; already-read messages are left untouched.
	query := `
		UPDATE messages
		SET read_at = CURRENT_TIMESTAMP
		WHERE receiver_id = $1 AND sender_id = $2 AND read_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, receiverID)
	return count, err
}
