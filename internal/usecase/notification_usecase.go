package usecase

import (
	"context"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// PublishNotificationInput is raised by the inference service for a detected incident.
type PublishNotificationInput struct {
	Title       string
	Description string
	CrimeID     *uuid.UUID
}

// MarkAllReadOutput reports how many notifications changed state.
type MarkAllReadOutput struct {
	Updated int
}

// NotificationUsecase defines fan-out and per-user read tracking.
type NotificationUsecase interface {
	// Publish persists the notification, then broadcasts it to live subscribers.
	Publish(ctx context.Context, input *PublishNotificationInput) (*entity.Notification, error)

	// ListForUser returns every notification, newest first, with the user's read flag.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserNotification, error)

	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (*MarkAllReadOutput, error)

	// Delete removes the notification together with every read-state row.
	Delete(ctx context.Context, notificationID uuid.UUID) error
}
