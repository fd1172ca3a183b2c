// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"vigil/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// ErrReadStateNotFound is returned when a user has no read-state row for a notification.
var ErrReadStateNotFound = errors.New("notification read state not found")

// NotificationRepository defines the interface for notification-related database operations.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByID retrieves a notification by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)

	// List returns every notification, newest first.
	List(ctx context.Context) ([]*entity.Notification, error)

	// ListIDs returns the IDs of every notification.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// Delete removes a notification. Returns ErrNotificationNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindReadStates returns every read-state row of a user.
	FindReadStates(ctx context.Context, userID uuid.UUID) ([]*entity.NotificationReadState, error)

	// FindReadState returns one read-state row.
	FindReadState(ctx context.Context, userID, notificationID uuid.UUID) (*entity.NotificationReadState, error)

	// UpsertReadState inserts or updates the (user, notification) row.
	UpsertReadState(ctx context.Context, state *entity.NotificationReadState) error

	// DeleteReadStates removes every read-state row of a notification.
	DeleteReadStates(ctx context.Context, notificationID uuid.UUID) error
}
