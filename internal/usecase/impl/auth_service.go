// Package impl contains the implementation of the application's business logic.
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

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	codeRegistry      service.CodeRegistry
	codeSender        service.CodeSender
	googleAuthService service.OAuthAuthService
	exposeCode        bool
	dummyHash         string
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	CodeRegistry      service.CodeRegistry
	CodeSender        service.CodeSender
	GoogleAuthService service.OAuthAuthService `optional:"true"`
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	exposeCode := false
	if params.Config != nil && params.Config.Auth != nil {
		exposeCode = params.Config.Auth.ExposeCodeInResponse
	}

	// Unknown emails are checked against a hash at the configured cost so
	// both login failures take the same time.
	dummyHash, err := params.Hasher.Hash(uuid.NewString())
	if err != nil {
		params.Logger.Warn("Falling back to static dummy password hash", slog.Any("error", err))
		dummyHash = fallbackDummyHash
	}

	return &authService{
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		codeRegistry:      params.CodeRegistry,
		codeSender:        params.CodeSender,
		googleAuthService: params.GoogleAuthService,
		exposeCode:        exposeCode,
		dummyHash:         dummyHash,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies email and password. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, srv.dummyHash)

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Info("Login rejected: password mismatch", slog.String("user_id", user.ID.String()))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	return srv.completeSignIn(ctx, user)
}

// GoogleLogin signs in an existing account whose email Google has verified.
func (srv *authService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	if srv.googleAuthService == nil {
		return nil, errors.WithStack(domainerrors.ErrOAuthNotConfigured)
	}

	oauthUser, err := srv.googleAuthService.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.log(ctx).Info("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrOAuthTokenInvalid, err.Error())
	}

	user, err := srv.userRepo.FindByEmail(ctx, oauthUser.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "no account for google email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if user.CanSignIn() && !user.HasGoogleAuth {
		linked := true
		user, err = srv.userRepo.UpdateFields(ctx, user.ID, &repository.UserUpdate{HasGoogleAuth: &linked})
		if err != nil {
			return nil, errors.Wrap(err, "failed to link google sign-in")
		}
	}

	return srv.completeSignIn(ctx, user)
}

// VerifySecondFactor redeems a login code and mints the session.
func (srv *authService) VerifySecondFactor(ctx context.Context, input *usecase.VerifySecondFactorInput) (*usecase.LoginOutput, error) {
	userID, err := srv.codeRegistry.Redeem(ctx, input.Code, entity.CodePurposeLogin)
	if err != nil {
		return nil, srv.mapCodeError(err)
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "code owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// The account may have been blocked while the code was outstanding.
	if err := checkAccountStatus(user); err != nil {
		return nil, err
	}

	return srv.mintSession(ctx, user)
}

// RequestPasswordReset issues a reset code for active accounts and reports
// success regardless of whether the email is known.
func (srv *authService) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) (*usecase.ResetRequestOutput, error) {
	output := &usecase.ResetRequestOutput{}

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email")

			return output, nil
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if !user.Active {
		srv.log(ctx).Info("Password reset requested for deactivated account", slog.String("user_id", user.ID.String()))

		return output, nil
	}

	code, err := srv.issueCode(ctx, user, entity.CodePurposeReset)
	if err != nil {
		return nil, err
	}
	if srv.exposeCode {
		output.TempToken = code.Code
	}

	return output, nil
}

// VerifyResetCode checks a reset code without consuming it.
func (srv *authService) VerifyResetCode(ctx context.Context, input *usecase.VerifyResetCodeInput) error {
	if _, err := srv.codeRegistry.Peek(ctx, input.Code, entity.CodePurposeReset); err != nil {
		return srv.mapCodeError(err)
	}

	return nil
}

// ResetPassword consumes a reset code and stores the new password hash.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	userID, err := srv.codeRegistry.Redeem(ctx, input.Code, entity.CodePurposeReset)
	if err != nil {
		return srv.mapCodeError(err)
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "code owner no longer exists")
		}

		return errors.Wrap(err, "failed to find user by id")
	}
	if !user.Active {
		return errors.WithStack(domainerrors.ErrAccountInactive)
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}
	if _, err := srv.userRepo.UpdateFields(ctx, user.ID, &repository.UserUpdate{PasswordHash: &hash}); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password reset completed", slog.String("user_id", user.ID.String()))

	return nil
}

// completeSignIn runs the checks shared by password and Google sign-in once
// the credential itself has been accepted.
func (srv *authService) completeSignIn(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	if err := checkAccountStatus(user); err != nil {
		srv.log(ctx).Info("Login rejected: account cannot sign in",
			slog.String("user_id", user.ID.String()),
			slog.Bool("blocked", user.Blocked),
			slog.Bool("active", user.Active),
		)

		return nil, err
	}

	if !user.TwoFactorEnabled {
		return srv.mintSession(ctx, user)
	}

	code, err := srv.issueCode(ctx, user, entity.CodePurposeLogin)
	if err != nil {
		return nil, err
	}

	output := &usecase.LoginOutput{Pending: true}
	if srv.exposeCode {
		output.TempToken = code.Code
	}

	return output, nil
}

func (srv *authService) issueCode(ctx context.Context, user *entity.User, purpose entity.CodePurpose) (*entity.SecondFactorCode, error) {
	code, err := srv.codeRegistry.Issue(ctx, user.ID, purpose)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	// Delivery is queued; a mail failure never fails the request.
	srv.codeSender.SendCode(ctx, user.Email, code)

	srv.log(ctx).Info("Second-factor code issued",
		slog.String("user_id", user.ID.String()),
		slog.String("purpose", string(purpose)),
	)

	return code, nil
}

func (srv *authService) mintSession(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	session, err := srv.tokenService.Mint(user)
	if err != nil {
		srv.log(ctx).Error("Failed to mint session", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrSessionIssueFailed, err.Error())
	}

	return &usecase.LoginOutput{
		Session: session,
		User:    user,
	}, nil
}

func (srv *authService) mapCodeError(err error) error {
	if errors.Is(err, service.ErrCodeInvalidOrExpired) {
		return errors.Wrap(domainerrors.ErrInvalidOrExpiredCode, err.Error())
	}

	return errors.Wrap(domainerrors.ErrInternalError, err.Error())
}

// checkAccountStatus rejects blocked and deactivated accounts.
func checkAccountStatus(user *entity.User) error {
	if !user.Active {
		return errors.WithStack(domainerrors.ErrAccountInactive)
	}
	if user.Blocked {
		return errors.WithStack(domainerrors.ErrAccountBlocked)
	}

	return nil
}

// fallbackDummyHash is used only when the hasher cannot produce a dummy hash.
const fallbackDummyHash = "$2a$12$C6UzMDM.H6dfI/f/IKxGhu2r0Z0ZsQ1s1z6mwh0QZ4f7Bq5b8n5u6"
