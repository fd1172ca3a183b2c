// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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
	"gorm.io/gen"
	"gorm.io/gen/field"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using the GORM Gen query builder.
type userRepository struct {
	q *query.Query
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		q: query.Use(db),
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by id", repo.q.UserModel.ID.Eq(id))
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by email", repo.q.UserModel.Email.Eq(email))
}

// FindByPhone retrieves a single user by their phone number.
func (repo *userRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return repo.findOne(ctx, "failed to find user by phone", repo.q.UserModel.Phone.Eq(phone))
}

func (repo *userRepository) findOne(ctx context.Context, failMsg string, conds ...gen.Condition) (*entity.User, error) {
	userM, err := repo.q.UserModel.WithContext(ctx).Where(conds...).First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, failMsg)
	}

	return toUserDomain(userM), nil
}

// List returns every user ordered by creation time.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	u := repo.q.UserModel
	userMs, err := u.WithContext(ctx).Order(u.CreatedAt, u.ID).Find()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, len(userMs))
	for i, userM := range userMs {
		users[i] = toUserDomain(userM)
	}

	return users, nil
}

// ExistsWithRole reports whether an active user with the given role exists.
func (repo *userRepository) ExistsWithRole(ctx context.Context, role entity.Role) (bool, error) {
	u := repo.q.UserModel
	count, err := u.WithContext(ctx).
		Where(u.Role.Eq(string(role)), u.Active.Is(true)).
		Count()
	if err != nil {
		return false, errors.Wrap(err, "failed to count users by role")
	}

	return count > 0, nil
}

// Create persists a new user. The ID is assigned here when the caller left it empty.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}

	userM := fromUserDomain(user)
	if err := repo.q.UserModel.WithContext(ctx).Create(userM); err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrDuplicateUser, uniqueViolationColumn(err))
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateFields writes only the columns named by update, plus updated_at, and
// returns the row as stored afterwards.
func (repo *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, update *repository.UserUpdate) (*entity.User, error) {
	if update.IsEmpty() {
		return repo.FindByID(ctx, id)
	}

	u := repo.q.UserModel
	assignments := []field.AssignExpr{u.UpdatedAt.Value(time.Now())}
	if update.PasswordHash != nil {
		assignments = append(assignments, u.PasswordHash.Value(*update.PasswordHash))
	}
	if update.Blocked != nil {
		assignments = append(assignments, u.Blocked.Value(*update.Blocked))
	}
	if update.Active != nil {
		assignments = append(assignments, u.Active.Value(*update.Active))
	}
	if update.DeactivatedBy != nil {
		assignments = append(assignments, u.DeactivatedBy.Value(*update.DeactivatedBy))
	}
	if update.TwoFactorEnabled != nil {
		assignments = append(assignments, u.TwoFactorEnabled.Value(*update.TwoFactorEnabled))
	}
	if update.HasGoogleAuth != nil {
		assignments = append(assignments, u.HasGoogleAuth.Value(*update.HasGoogleAuth))
	}

	info, err := u.WithContext(ctx).Where(u.ID.Eq(id)).UpdateSimple(assignments...)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if info.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                  data.ID,
		Names:               data.Names,
		Email:               data.Email,
		Phone:               data.Phone,
		PasswordHash:        data.PasswordHash,
		Role:                entity.Role(data.Role),
		Blocked:             data.Blocked,
		Active:              data.Active,
		TwoFactorEnabled:    data.TwoFactorEnabled,
		NotificationEnabled: data.NotificationEnabled,
		HasGoogleAuth:       data.HasGoogleAuth,
		DeactivatedBy:       data.DeactivatedBy,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                  data.ID,
		Names:               data.Names,
		Email:               data.Email,
		Phone:               data.Phone,
		PasswordHash:        data.PasswordHash,
		Role:                string(data.Role),
		Blocked:             data.Blocked,
		Active:              data.Active,
		TwoFactorEnabled:    data.TwoFactorEnabled,
		NotificationEnabled: data.NotificationEnabled,
		HasGoogleAuth:       data.HasGoogleAuth,
		DeactivatedBy:       data.DeactivatedBy,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
