package impl

import (
	"context"
	"crypto/subtle"
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

type accessService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	modelAPIKey  []byte
	logger       *slog.Logger
}

// AccessServiceParams holds dependencies for AccessService, injected by Fx.
type AccessServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccessService is the constructor for accessService.
func NewAccessService(params AccessServiceParams) usecase.AccessUsecase {
	return &accessService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		modelAPIKey:  []byte(params.Config.SecretKey.ModelAPIKey),
		logger:       params.Logger,
	}
}

func (srv *accessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate checks signature and expiry only. Account status is left to Authorize.
func (srv *accessService) Authenticate(ctx context.Context, token string) (*entity.SessionClaims, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "missing session token")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Debug("Session token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrSessionInvalid, err.Error())
	}

	return claims, nil
}

// Authorize re-reads the account on every call so blocking and deactivation
// take effect before the session expires.
func (srv *accessService) Authorize(ctx context.Context, userID uuid.UUID, roles ...entity.Role) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrForbidden.WithDetails("account not found")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	switch {
	case !user.Active:
		return nil, domainerrors.ErrForbidden.WithDetails("account is deactivated")
	case user.Blocked:
		return nil, domainerrors.ErrForbidden.WithDetails("account is blocked")
	case !user.HasRole(roles...):
		srv.log(ctx).Info("Authorization denied: role mismatch",
			slog.String("user_id", user.ID.String()),
			slog.String("role", string(user.Role)),
			slog.Any("required", roles),
		)

		return nil, domainerrors.ErrForbidden.WithDetails("insufficient role")
	}

	return user, nil
}

// VerifyMachineKey compares in constant time. An unset secret rejects every caller.
func (srv *accessService) VerifyMachineKey(key string) error {
	if len(srv.modelAPIKey) == 0 || key == "" {
		return errors.WithStack(domainerrors.ErrInvalidMachineKey)
	}
	if subtle.ConstantTimeCompare([]byte(key), srv.modelAPIKey) != 1 {
		return errors.WithStack(domainerrors.ErrInvalidMachineKey)
	}

	return nil
}
