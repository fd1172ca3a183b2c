package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"vigil/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// localHTTPPublisher pushes notification events to a development endpoint
// in the Pub/Sub push format. Pushes sharing an ordering key are serialized.
type localHTTPPublisher struct {
	endpoint     string
	subscription string
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

// PushMessage is the body a Pub/Sub push subscription delivers.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher pushes to endpoint as if subscribed to topicID.
func NewLocalHTTPPublisher(endpoint, topicID string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:     endpoint,
		subscription: fmt.Sprintf("projects/local/subscriptions/%s-push", topicID),
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
		now:          time.Now,
		keyLocks:     make(map[string]*sync.Mutex),
	}
}

func (p *localHTTPPublisher) lockFor(key string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock, ok := p.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		p.keyLocks[key] = lock
	}

	return lock
}

func (p *localHTTPPublisher) PublishNotificationEvent(ctx context.Context, event *service.NotificationEvent) error {
	now := p.now()
	data, err := encodeEvent(event, now)
	if err != nil {
		return err
	}

	key := orderingKey(event)
	push := PushMessage{Subscription: p.subscription}
	push.Message.Data = base64.StdEncoding.EncodeToString(data)
	push.Message.Attributes = eventAttributes(event)
	push.Message.MessageID = uuid.NewString()
	push.Message.OrderingKey = key
	push.Message.PublishTime = now.UTC().Format(time.RFC3339Nano)

	body, err := json.Marshal(push)
	if err != nil {
		return errors.WithStack(err)
	}

	lock := p.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push notification %s", event.NotificationID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("push endpoint returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Debug("Notification event pushed",
		slog.String("notification_id", event.NotificationID),
		slog.String("ordering_key", key),
		slog.String("endpoint", p.endpoint),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
