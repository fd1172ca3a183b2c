package service

import (
	"context"
)

// PushService delivers mobile push messages.
type PushService interface {
	// SendTopicNotification sends one message to every device subscribed to the configured topic.
	SendTopicNotification(ctx context.Context, title, body string, data map[string]string) error
}
