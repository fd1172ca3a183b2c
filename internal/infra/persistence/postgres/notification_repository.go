package postgres

import (
	"context"
	"time"

	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	"vigil/internal/infra/persistence/model"
	"vigil/internal/infra/persistence/postgres/query"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	q *query.Query
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		q: query.Use(db),
	}
}

// Create persists a new notification, assigning its ID and timestamp when missing.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate notification id")
		}
		notification.ID = id
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	notificationM := fromNotificationDomain(notification)
	if err := repo.q.NotificationModel.WithContext(ctx).Create(notificationM); err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrNotificationCreationFailed.WrapMessage("missing required notification information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	return nil
}

// FindByID retrieves a notification by its unique ID.
func (repo *notificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	n := repo.q.NotificationModel
	notificationM, err := n.WithContext(ctx).Where(n.ID.Eq(id)).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find notification by id")
	}

	return toNotificationDomain(notificationM), nil
}

// List returns every notification, newest first.
func (repo *notificationRepository) List(ctx context.Context) ([]*entity.Notification, error) {
	n := repo.q.NotificationModel
	notificationMs, err := n.WithContext(ctx).Order(n.CreatedAt.Desc(), n.ID.Desc()).Find()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, len(notificationMs))
	for i, notificationM := range notificationMs {
		notifications[i] = toNotificationDomain(notificationM)
	}

	return notifications, nil
}

// ListIDs returns the IDs of every notification.
func (repo *notificationRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	n := repo.q.NotificationModel
	if err := n.WithContext(ctx).Pluck(n.ID, &ids); err != nil {
		return nil, errors.Wrap(err, "failed to list notification ids")
	}

	return ids, nil
}

// Delete removes a notification row.
func (repo *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n := repo.q.NotificationModel
	info, err := n.WithContext(ctx).Where(n.ID.Eq(id)).Delete()
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete notification")
	}
	if info.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// FindReadStates returns every read-state row of a user.
func (repo *notificationRepository) FindReadStates(ctx context.Context, userID uuid.UUID) ([]*entity.NotificationReadState, error) {
	rs := repo.q.NotificationReadStateModel
	stateMs, err := rs.WithContext(ctx).Where(rs.UserID.Eq(userID)).Find()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find read states")
	}

	states := make([]*entity.NotificationReadState, len(stateMs))
	for i, stateM := range stateMs {
		states[i] = toReadStateDomain(stateM)
	}

	return states, nil
}

// FindReadState returns the read-state row for one (user, notification) pair.
func (repo *notificationRepository) FindReadState(ctx context.Context, userID, notificationID uuid.UUID) (*entity.NotificationReadState, error) {
	rs := repo.q.NotificationReadStateModel
	stateM, err := rs.WithContext(ctx).
		Where(rs.UserID.Eq(userID), rs.NotificationID.Eq(notificationID)).
		First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReadStateNotFound
		}

		return nil, errors.Wrap(err, "failed to find read state")
	}

	return toReadStateDomain(stateM), nil
}

// UpsertReadState inserts the row or overwrites is_read on conflict, so a
// (user, notification) pair never has more than one row.
func (repo *notificationRepository) UpsertReadState(ctx context.Context, state *entity.NotificationReadState) error {
	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.UpdatedAt = now

	rs := repo.q.NotificationReadStateModel
	if err := rs.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "notification_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_read", "updated_at"}),
		}).
		Create(fromReadStateDomain(state)); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert read state")
	}

	return nil
}

// DeleteReadStates removes every read-state row of a notification.
func (repo *notificationRepository) DeleteReadStates(ctx context.Context, notificationID uuid.UUID) error {
	rs := repo.q.NotificationReadStateModel
	if _, err := rs.WithContext(ctx).Where(rs.NotificationID.Eq(notificationID)).Delete(); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete read states")
	}

	return nil
}

// --- Mapper Functions ---

func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		CrimeID:     data.CrimeID,
		CreatedAt:   data.CreatedAt,
	}
}

func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		CrimeID:     data.CrimeID,
		CreatedAt:   data.CreatedAt,
	}
}

func toReadStateDomain(data *model.NotificationReadStateModel) *entity.NotificationReadState {
	if data == nil {
		return nil
	}

	return &entity.NotificationReadState{
		UserID:         data.UserID,
		NotificationID: data.NotificationID,
		IsRead:         data.IsRead,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromReadStateDomain(data *entity.NotificationReadState) *model.NotificationReadStateModel {
	if data == nil {
		return nil
	}

	return &model.NotificationReadStateModel{
		UserID:         data.UserID,
		NotificationID: data.NotificationID,
		IsRead:         data.IsRead,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
