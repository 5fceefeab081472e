// Package notify publishes per-user events over Redis pub/sub so interested
// clients learn about new connection requests and messages asynchronously.
// Delivery beyond publish (fan-out, reconnect, replay) is the subscriber's
// concern.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	EventConnectionRequested EventType = "connection_requested"
	EventConnectionAccepted  EventType = "connection_accepted"
	EventMessageReceived     EventType = "message_received"
)

// Event is the JSON payload published to a user's channel.
type Event struct {
	Type       EventType `json:"type"`
	FromUserID int       `json:"from_user_id"`
	EntityID   int       `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// UserChannel returns the pub/sub channel carrying a user's events.
func UserChannel(userID int) string {
	return fmt.Sprintf("user:%d:events", userID)
}

func (p *Publisher) Publish(ctx context.Context, toUserID int, event Event) error {
	if p == nil || p.client == nil {
		// Notification transport is optional; core flows proceed without it.
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, UserChannel(toUserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *Publisher) ConnectionRequested(ctx context.Context, toUserID, fromUserID, connectionID int) error {
	return p.Publish(ctx, toUserID, Event{
		Type:       EventConnectionRequested,
		FromUserID: fromUserID,
		EntityID:   connectionID,
	})
}

func (p *Publisher) ConnectionAccepted(ctx context.Context, toUserID, fromUserID, connectionID int) error {
	return p.Publish(ctx, toUserID, Event{
		Type:       EventConnectionAccepted,
		FromUserID: fromUserID,
		EntityID:   connectionID,
	})
}

func (p *Publisher) MessageReceived(ctx context.Context, toUserID, fromUserID, messageID int) error {
	return p.Publish(ctx, toUserID, Event{
		Type:       EventMessageReceived,
		FromUserID: fromUserID,
		EntityID:   messageID,
	})
}
