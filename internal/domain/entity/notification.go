// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an incident alert shared by every console user.
type Notification struct {
	ID          uuid.UUID  `json:"id"`          // The Global Unique Identifier (GUID) for the notification.
	Title       string     `json:"title"`       // Short headline.
	Description string     `json:"description"` // Body text.
	CrimeID     *uuid.UUID `json:"crimeId"`     // Optional reference to the incident that raised it.
	CreatedAt   time.Time  `json:"createdAt"`   // Publication time, used for newest-first ordering.
}

// NotificationReadState records whether one user has read one notification.
// A missing row means unread.
type NotificationReadState struct {
	UserID         uuid.UUID `json:"userId"`
	NotificationID uuid.UUID `json:"notificationId"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserNotification is a notification as seen by one user.
type UserNotification struct {
	Notification
	IsRead bool `json:"isRead"`
}
