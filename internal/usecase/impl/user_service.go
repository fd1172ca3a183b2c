package impl

import (
	"context"
	"log/slog"

	"vigil/config"
	deliverycontext "vigil/internal/delivery/context"
	"vigil/internal/domain/entity"
	domainerrors "vigil/internal/domain/errors"
	"vigil/internal/domain/repository"
	"vigil/internal/domain/service"
	"vigil/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	bootstrap *config.BootstrapConfig
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Config    *config.Config
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	var bootstrap *config.BootstrapConfig
	if params.Config != nil {
		bootstrap = params.Config.Bootstrap
	}

	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		bootstrap: bootstrap,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser creates an active account. Email and phone must both be unused.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	role := input.Role
	if role == "" {
		role = entity.DefaultRole
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown role: " + string(role))
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Names:               input.Names,
		Email:               input.Email,
		Phone:               input.Phone,
		PasswordHash:        hash,
		Role:                role,
		Active:              true,
		NotificationEnabled: true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := ensureUnused(ctx, userRepo.FindByEmail, input.Email, domainerrors.ErrUserAlreadyExists); err != nil {
			return err
		}
		if err := ensureUnused(ctx, userRepo.FindByPhone, input.Phone, domainerrors.ErrPhoneAlreadyExists); err != nil {
			return err
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return errors.Wrap(domainerrors.ErrUserAlreadyExists, err.Error())
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

func ensureUnused(ctx context.Context, find func(context.Context, string) (*entity.User, error), value string, conflict *domainerrors.BaseError) error {
	_, err := find(ctx, value)
	if err == nil {
		return errors.WithStack(conflict)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}

	return errors.Wrap(err, "failed to check uniqueness")
}

// ListUsers returns every account, deactivated ones included.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetProfile returns the account of the caller.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return srv.findUser(ctx, userID)
}

// SetAccess blocks or unblocks an account.
func (srv *userService) SetAccess(ctx context.Context, targetID uuid.UUID, blocked bool) (*entity.User, error) {
	user, err := srv.updateFields(ctx, targetID, &repository.UserUpdate{Blocked: &blocked})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User access changed",
		slog.String("user_id", user.ID.String()),
		slog.Bool("blocked", blocked),
	)

	return user, nil
}

// Deactivate soft-deletes an account. A SUPERADMIN cannot deactivate themselves.
func (srv *userService) Deactivate(ctx context.Context, actorID, targetID uuid.UUID) (*entity.User, error) {
	if actorID == targetID {
		return nil, errors.WithStack(domainerrors.ErrCannotDeactivateSelf)
	}

	active := false
	user, err := srv.updateFields(ctx, targetID, &repository.UserUpdate{
		Active:        &active,
		DeactivatedBy: &actorID,
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User deactivated",
		slog.String("user_id", user.ID.String()),
		slog.String("deactivated_by", actorID.String()),
	)

	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	return srv.setPassword(ctx, user.ID, input.NewPassword)
}

// AdminChangePassword replaces another user's password.
func (srv *userService) AdminChangePassword(ctx context.Context, targetID uuid.UUID, newPassword string) error {
	return srv.setPassword(ctx, targetID, newPassword)
}

// ToggleSecondFactor flips the 2FA flag.
func (srv *userService) ToggleSecondFactor(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	enabled := !user.TwoFactorEnabled

	return srv.updateFields(ctx, userID, &repository.UserUpdate{TwoFactorEnabled: &enabled})
}

// EnsureSuperAdmin seeds the configured SUPERADMIN when none is active.
func (srv *userService) EnsureSuperAdmin(ctx context.Context) error {
	if srv.bootstrap == nil || srv.bootstrap.Email == "" || srv.bootstrap.Password == "" {
		return nil
	}

	exists, err := srv.userRepo.ExistsWithRole(ctx, entity.RoleSuperAdmin)
	if err != nil {
		return errors.Wrap(err, "failed to look up superadmin")
	}
	if exists {
		return nil
	}

	user, err := srv.CreateUser(ctx, &usecase.CreateUserInput{
		Names:    srv.bootstrap.Names,
		Email:    srv.bootstrap.Email,
		Phone:    srv.bootstrap.Phone,
		Password: srv.bootstrap.Password,
		Role:     entity.RoleSuperAdmin,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) || errors.Is(err, domainerrors.ErrPhoneAlreadyExists) {
			srv.log(ctx).Warn("Bootstrap superadmin skipped: email or phone already taken",
				slog.String("email", srv.bootstrap.Email),
			)

			return nil
		}

		return errors.Wrap(err, "failed to create bootstrap superadmin")
	}

	srv.log(ctx).Info("Bootstrap superadmin created", slog.String("user_id", user.ID.String()))

	return nil
}

func (srv *userService) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	_, err = srv.updateFields(ctx, userID, &repository.UserUpdate{PasswordHash: &hash})

	return err
}

func (srv *userService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return user, nil
}

func (srv *userService) updateFields(ctx context.Context, userID uuid.UUID, update *repository.UserUpdate) (*entity.User, error) {
	user, err := srv.userRepo.UpdateFields(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}
