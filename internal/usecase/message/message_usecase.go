package message

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/metrics"
	"github.com/kindredapp/kindred-backend/internal/notify"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type MessageUseCase struct {
	messageRepo    repository.MessageRepository
	connectionRepo repository.ConnectionRepository
	publisher      *notify.Publisher
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	connectionRepo repository.ConnectionRepository,
	publisher *notify.Publisher,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo:    messageRepo,
		connectionRepo: connectionRepo,
		publisher:      publisher,
	}
}

type SendMessageRequest struct {
	ReceiverID  int                `json:"receiver_id" binding:"required"`
	Content     string             `json:"content" binding:"required,max=2000"`
	MessageType domain.MessageType `json:"message_type" binding:"omitempty,oneof=text image"`
}

// Send stores a message. An accepted connection between the two users is a
// precondition.
func (uc *MessageUseCase) Send(ctx context.Context, senderID int, req *SendMessageRequest) (*domain.Message, error) {
	if senderID == req.ReceiverID {
		return nil, domain.ErrInvalidInput
	}

	accepted, err := uc.isAccepted(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check connection: %w", err)
	}
	if !accepted {
		return nil, domain.ErrConnectionNotAccepted
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = domain.MessageText
	}

	msg := &domain.Message{
		SenderID:    senderID,
		ReceiverID:  req.ReceiverID,
		Content:     req.Content,
		MessageType: msgType,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	metrics.MessagesTotal.WithLabelValues("sent").Inc()
	if err := uc.publisher.MessageReceived(ctx, msg.ReceiverID, msg.SenderID, msg.ID); err != nil {
		log.Printf("failed to publish message event: %v", err)
	}

	return msg, nil
}

// ListThread returns the two-way conversation, newest first.
func (uc *MessageUseCase) ListThread(ctx context.Context, userID, otherUserID int, limit, offset int) ([]*domain.Message, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.messageRepo.ListThread(ctx, userID, otherUserID, limit, offset)
}

// MarkThreadRead stamps read_at on the unread messages the other user sent.
// Only the receiver of those messages may do this, which holds by
// construction: userID is the authenticated caller.
func (uc *MessageUseCase) MarkThreadRead(ctx context.Context, userID, otherUserID int) (int, error) {
	marked, err := uc.messageRepo.MarkThreadRead(ctx, userID, otherUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark thread read: %w", err)
	}
	if marked > 0 {
		metrics.MessagesTotal.WithLabelValues("read").Add(float64(marked))
	}
	return marked, nil
}

func (uc *MessageUseCase) CountUnread(ctx context.Context, userID int) (int, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

func (uc *MessageUseCase) isAccepted(ctx context.Context, user1ID, user2ID int) (bool, error) {
	conn, err := uc.connectionRepo.GetBetween(ctx, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, domain.ErrConnectionNotFound) {
			return false, nil
		}
		return false, err
	}
	return conn.Status == domain.ConnectionAccepted, nil
}
