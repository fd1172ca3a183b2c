// Package notification delivers mobile push messages through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"

	"vigil/config"
	"vigil/internal/domain/service"
	"vigil/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// topicSender matches the subset of *messaging.Client used here.
type topicSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseService struct {
	client topicSender
	topic  string
	logger *slog.Logger
}

// NewFirebaseService creates the push service. It returns nil when Firebase
// is not configured, which disables mobile push.
func NewFirebaseService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushService, error) {
	if cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "" || cfg.Firebase.Topic == "" {
		logger.Info("Firebase push disabled: firebase.credentialsPath or firebase.topic is not set")

		return nil, nil
	}

	var appConfig *firebase.Config
	if cfg.Firebase.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	logger.Info("Firebase push enabled", slog.String("topic", cfg.Firebase.Topic))

	return &firebaseService{
		client: client,
		topic:  cfg.Firebase.Topic,
		logger: logger,
	}, nil
}

// SendTopicNotification sends one message to every device subscribed to the topic.
func (s *firebaseService) SendTopicNotification(ctx context.Context, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	messageID, err := s.client.Send(ctx, message)
	if err != nil {
		return errors.Wrap(err, "failed to send topic notification")
	}

	s.logger.Debug("Topic notification sent", slog.String("topic", s.topic), slog.String("message_id", messageID))

	return nil
}
