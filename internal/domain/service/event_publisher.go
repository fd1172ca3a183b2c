package service

import (
	"context"
	"time"
)

// NotificationEvent is the outbound copy of a published notification
// relayed to downstream consumers (dispatch tooling, analytics).
type NotificationEvent struct {
	RequestID      string    `json:"request_id,omitempty"` // For distributed tracing
	NotificationID string    `json:"notification_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CrimeID        string    `json:"crime_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishNotificationEvent publishes a notification event for async processing
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
