package pubsub

import (
	"encoding/json"
	"time"

	"vigil/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	notificationPublishedType = "notification.published"
	eventSchemaVersion        = "1"
)

// eventEnvelope is the message body downstream consumers decode.
type eventEnvelope struct {
	Type         string                     `json:"type"`
	Version      string                     `json:"version"`
	PublishedAt  time.Time                  `json:"published_at"`
	Notification *service.NotificationEvent `json:"notification"`
}

func encodeEvent(event *service.NotificationEvent, now time.Time) ([]byte, error) {
	data, err := json.Marshal(eventEnvelope{
		Type:         notificationPublishedType,
		Version:      eventSchemaVersion,
		PublishedAt:  now.UTC(),
		Notification: event,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// orderingKey groups every notification about the same crime so consumers
// see them in publish order. Unrelated notifications stay unordered.
func orderingKey(event *service.NotificationEvent) string {
	if event.CrimeID != "" {
		return "crime/" + event.CrimeID
	}

	return "notification/" + event.NotificationID
}

// eventAttributes carries the type and ids consumers filter and trace on.
func eventAttributes(event *service.NotificationEvent) map[string]string {
	attributes := map[string]string{
		"event_type":      notificationPublishedType,
		"schema_version":  eventSchemaVersion,
		"notification_id": event.NotificationID,
	}
	if event.CrimeID != "" {
		attributes["crime_id"] = event.CrimeID
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
