package connection

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/gemini"
	"github.com/kindredapp/kindred-backend/internal/metrics"
	"github.com/kindredapp/kindred-backend/internal/notify"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type ConnectionUseCase struct {
	connectionRepo   repository.ConnectionRepository
	profileRepo      repository.ProfileRepository
	userInterestRepo repository.UserInterestRepository
	publisher        *notify.Publisher
	geminiClient     *gemini.Client
}

func NewConnectionUseCase(
	connectionRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	userInterestRepo repository.UserInterestRepository,
	publisher *notify.Publisher,
	geminiClient *gemini.Client,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connectionRepo:   connectionRepo,
		profileRepo:      profileRepo,
		userInterestRepo: userInterestRepo,
		publisher:        publisher,
		geminiClient:     geminiClient,
	}
}

// ConnectionResponse pairs a connection with the other party's profile.
type ConnectionResponse struct {
	Connection *domain.Connection `json:"connection"`
	Profile    *domain.Profile    `json:"profile,omitempty"`
}

// AcceptResponse is returned to the receiver on accept. Icebreakers are
// best-effort AI suggestions and may be empty.
type AcceptResponse struct {
	Connection  *domain.Connection `json:"connection"`
	Icebreakers []string           `json:"icebreakers,omitempty"`
}

// Request creates a pending connection from requester to receiver.
func (uc *ConnectionUseCase) Request(ctx context.Context, requesterID, receiverID int) (*domain.Connection, error) {
	if requesterID == receiverID {
		return nil, domain.ErrCannotConnectSelf
	}
	if _, err := uc.profileRepo.GetByUserID(ctx, receiverID); err != nil {
		return nil, err
	}
	if existing, err := uc.connectionRepo.GetByUsers(ctx, requesterID, receiverID); err == nil && existing != nil {
		return nil, domain.ErrConnectionExists
	}

	conn := &domain.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      domain.ConnectionPending,
	}
	if err := uc.connectionRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	metrics.ConnectionEventsTotal.WithLabelValues("requested").Inc()
	if err := uc.publisher.ConnectionRequested(ctx, receiverID, requesterID, conn.ID); err != nil {
		log.Printf("failed to publish connection request event: %v", err)
	}

	return conn, nil
}

// Accept transitions a pending connection to accepted. Only the receiver may
// do this.
func (uc *ConnectionUseCase) Accept(ctx context.Context, userID, connectionID int) (*AcceptResponse, error) {
	conn, err := uc.transition(ctx, userID, connectionID, domain.ConnectionAccepted)
	if err != nil {
		return nil, err
	}

	metrics.ConnectionEventsTotal.WithLabelValues("accepted").Inc()
	if err := uc.publisher.ConnectionAccepted(ctx, conn.RequesterID, conn.ReceiverID, conn.ID); err != nil {
		log.Printf("failed to publish connection accepted event: %v", err)
	}

	resp := &AcceptResponse{Connection: conn}
	if uc.geminiClient != nil {
		resp.Icebreakers = uc.suggestIcebreakers(ctx, conn.RequesterID, conn.ReceiverID)
	}
	return resp, nil
}

// Reject transitions a pending connection to rejected. Receiver only.
func (uc *ConnectionUseCase) Reject(ctx context.Context, userID, connectionID int) (*domain.Connection, error) {
	conn, err := uc.transition(ctx, userID, connectionID, domain.ConnectionRejected)
	if err != nil {
		return nil, err
	}
	metrics.ConnectionEventsTotal.WithLabelValues("rejected").Inc()
	return conn, nil
}

// Block marks a pending connection blocked. Receiver only.
func (uc *ConnectionUseCase) Block(ctx context.Context, userID, connectionID int) (*domain.Connection, error) {
	conn, err := uc.transition(ctx, userID, connectionID, domain.ConnectionBlocked)
	if err != nil {
		return nil, err
	}
	metrics.ConnectionEventsTotal.WithLabelValues("blocked").Inc()
	return conn, nil
}

func (uc *ConnectionUseCase) transition(ctx context.Context, userID, connectionID int, status domain.ConnectionStatus) (*domain.Connection, error) {
	conn, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != userID {
		return nil, domain.ErrNotConnectionReceiver
	}
	if conn.Status != domain.ConnectionPending {
		return nil, domain.ErrConnectionNotPending
	}
	if err := uc.connectionRepo.UpdateStatus(ctx, conn.ID, status); err != nil {
		return nil, err
	}
	conn.Status = status
	return conn, nil
}

func (uc *ConnectionUseCase) ListIncoming(ctx context.Context, userID int) ([]*ConnectionResponse, error) {
	conns, err := uc.connectionRepo.ListIncoming(ctx, userID, domain.ConnectionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming connections: %w", err)
	}
	return uc.withProfiles(ctx, userID, conns), nil
}

func (uc *ConnectionUseCase) ListOutgoing(ctx context.Context, userID int) ([]*ConnectionResponse, error) {
	conns, err := uc.connectionRepo.ListOutgoing(ctx, userID, domain.ConnectionPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing connections: %w", err)
	}
	return uc.withProfiles(ctx, userID, conns), nil
}

func (uc *ConnectionUseCase) ListAccepted(ctx context.Context, userID int) ([]*ConnectionResponse, error) {
	conns, err := uc.connectionRepo.ListAcceptedForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted connections: %w", err)
	}
	return uc.withProfiles(ctx, userID, conns), nil
}

func (uc *ConnectionUseCase) withProfiles(ctx context.Context, userID int, conns []*domain.Connection) []*ConnectionResponse {
	responses := make([]*ConnectionResponse, 0, len(conns))
	for _, conn := range conns {
		otherID, ok := conn.OtherUserID(userID)
		if !ok {
			continue
		}
		resp := &ConnectionResponse{Connection: conn}
		if profile, err := uc.profileRepo.GetByUserID(ctx, otherID); err == nil {
			resp.Profile = profile
		}
		responses = append(responses, resp)
	}
	return responses
}

// suggestIcebreakers asks the AI client for opening lines seeded with the
// pair's shared interests. Failures only cost the suggestion.
func (uc *ConnectionUseCase) suggestIcebreakers(ctx context.Context, requesterID, receiverID int) []string {
	shared, err := uc.sharedInterestNames(ctx, requesterID, receiverID)
	if err != nil {
		log.Printf("failed to collect shared interests for icebreakers: %v", err)
		return nil
	}
	icebreakers, err := uc.geminiClient.GenerateIcebreakers(ctx, shared)
	if err != nil {
		log.Printf("failed to generate icebreakers: %v", err)
		return nil
	}
	return icebreakers
}

func (uc *ConnectionUseCase) sharedInterestNames(ctx context.Context, user1ID, user2ID int) ([]string, error) {
	mine, err := uc.userInterestRepo.ListForUser(ctx, user1ID)
	if err != nil {
		return nil, err
	}
	theirs, err := uc.userInterestRepo.ListForUser(ctx, user2ID)
	if err != nil {
		return nil, err
	}

	ids := make(map[int]bool, len(mine))
	for _, i := range mine {
		ids[i.ID] = true
	}
	var shared []string
	for _, i := range theirs {
		if ids[i.ID] {
			shared = append(shared, i.Name)
		}
	}
	return shared, nil
}

// IsAcceptedBetween reports whether an accepted connection exists between
// two users, in either direction.
func (uc *ConnectionUseCase) IsAcceptedBetween(ctx context.Context, user1ID, user2ID int) (bool, error) {
	conn, err := uc.connectionRepo.GetBetween(ctx, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, domain.ErrConnectionNotFound) {
			return false, nil
		}
		return false, err
	}
	return conn.Status == domain.ConnectionAccepted, nil
}
