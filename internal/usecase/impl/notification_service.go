package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "vigil/internal/delivery/context"
	"vigil/internal/domain/constants"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	"vigil/internal/domain/service"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// relayTimeout bounds the push and event relay of one published notification.
const relayTimeout = 10 * time.Second

type notificationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	broadcaster      service.Broadcaster
	pushService      service.PushService
	eventPublisher   service.EventPublisher
	logger           *slog.Logger
	now              func() time.Time

	relays sync.WaitGroup
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	Lifecycle        fx.Lifecycle
	TxManager        repository.TransactionManager
	NotificationRepo repository.NotificationRepository
	Broadcaster      service.Broadcaster
	PushService      service.PushService    `optional:"true"`
	EventPublisher   service.EventPublisher `optional:"true"`
	Logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	s := &notificationService{
		txManager:        params.TxManager,
		notificationRepo: params.NotificationRepo,
		broadcaster:      params.Broadcaster,
		pushService:      params.PushService,
		eventPublisher:   params.EventPublisher,
		logger:           params.Logger,
		now:              time.Now,
	}

	if params.Lifecycle != nil {
		params.Lifecycle.Append(fx.Hook{
			OnStop: s.waitRelays,
		})
	}

	return s
}

func (s *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Publish stores the notification and then broadcasts it to live subscribers.
// Mobile push and the outbound event are relayed in the background.
func (s *notificationService) Publish(ctx context.Context, input *usecase.PublishNotificationInput) (*entity.Notification, error) {
	notification := &entity.Notification{
		Title:       input.Title,
		Description: input.Description,
		CrimeID:     input.CrimeID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to persist notification")
	}

	s.broadcaster.Broadcast(constants.EventNotification, notification)

	s.log(ctx).Info("Notification published", slog.String("notification_id", notification.ID.String()))

	if s.pushService != nil || s.eventPublisher != nil {
		relayCtx := context.WithoutCancel(ctx)
		s.relays.Add(1)
		go func() {
			defer s.relays.Done()
			s.relay(relayCtx, notification)
		}()
	}

	return notification, nil
}

// relay forwards a stored notification to push and pub/sub. Failures are logged only.
func (s *notificationService) relay(ctx context.Context, notification *entity.Notification) {
	ctx, cancel := context.WithTimeout(ctx, relayTimeout)
	defer cancel()

	logger := s.log(ctx).With(slog.String("notification_id", notification.ID.String()))

	if s.pushService != nil {
		data := map[string]string{
			"notification_id": notification.ID.String(),
			"event":           constants.EventNotification,
		}
		if notification.CrimeID != nil {
			data["crime_id"] = notification.CrimeID.String()
		}
		if err := s.pushService.SendTopicNotification(ctx, notification.Title, notification.Description, data); err != nil {
			logger.Warn("Push relay failed", slog.Any("error", err))
		}
	}

	if s.eventPublisher != nil {
		event := &service.NotificationEvent{
			RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
			NotificationID: notification.ID.String(),
			Title:          notification.Title,
			Description:    notification.Description,
			CreatedAt:      notification.CreatedAt,
		}
		if notification.CrimeID != nil {
			event.CrimeID = notification.CrimeID.String()
		}
		if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
			logger.Warn("Event relay failed", slog.Any("error", err))
		}
	}
}

// waitRelays blocks until background relays have finished or ctx is done.
func (s *notificationService) waitRelays(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.relays.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn("Notification relays still running at shutdown")

		return errors.WithStack(ctx.Err())
	}
}

// ListForUser left-joins every notification with the user's read-state rows.
func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserNotification, error) {
	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	read, err := s.readSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*entity.UserNotification, len(notifications))
	for i, n := range notifications {
		result[i] = &entity.UserNotification{
			Notification: *n,
			IsRead:       read[n.ID],
		}
	}

	return result, nil
}

// MarkRead records that the user has read the notification. Repeated calls are no-ops.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if _, err := s.notificationRepo.FindByID(ctx, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return errors.WithStack(domainerrors.ErrNotificationNotFound)
		}

		return errors.Wrap(err, "failed to find notification")
	}

	state, err := s.notificationRepo.FindReadState(ctx, userID, notificationID)
	switch {
	case err == nil && state.IsRead:
		return nil
	case err != nil && !errors.Is(err, repository.ErrReadStateNotFound):
		return errors.Wrap(err, "failed to find read state")
	}

	return s.markRead(ctx, userID, notificationID)
}

// MarkAllRead marks every notification read for the user, leaving rows that
// are already read untouched. Each row is written on its own, so a failed run
// can be retried in full.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (*usecase.MarkAllReadOutput, error) {
	ids, err := s.notificationRepo.ListIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notification ids")
	}

	read, err := s.readSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	output := &usecase.MarkAllReadOutput{}
	for _, id := range ids {
		if read[id] {
			continue
		}
		if err := s.markRead(ctx, userID, id); err != nil {
			return output, err
		}
		output.Updated++
	}

	return output, nil
}

// Delete removes the notification and all of its read-state rows in one transaction.
func (s *notificationService) Delete(ctx context.Context, notificationID uuid.UUID) error {
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NotificationRepo()

		if err := repo.DeleteReadStates(ctx, notificationID); err != nil {
			return errors.Wrap(err, "failed to delete read states")
		}
		if err := repo.Delete(ctx, notificationID); err != nil {
			if errors.Is(err, repository.ErrNotificationNotFound) {
				return errors.WithStack(domainerrors.ErrNotificationNotFound)
			}

			return errors.Wrap(err, "failed to delete notification")
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log(ctx).Info("Notification deleted", slog.String("notification_id", notificationID.String()))

	return nil
}

func (s *notificationService) readSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	states, err := s.notificationRepo.FindReadStates(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find read states")
	}

	read := make(map[uuid.UUID]bool, len(states))
	for _, state := range states {
		read[state.NotificationID] = state.IsRead
	}

	return read, nil
}

func (s *notificationService) markRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	err := s.notificationRepo.UpsertReadState(ctx, &entity.NotificationReadState{
		UserID:         userID,
		NotificationID: notificationID,
		IsRead:         true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}
